package access

import (
	"strings"
	"time"
)

// View names one listing/detail surface of the order API. Each view has its
// own row partition per role.
type View int

const (
	ViewOrders View = iota
	ViewOrdersToday
	ViewOrdersByStatus
	ViewOrdersByCategory
	ViewStatusDetail
	ViewReceptionBacklog
	ViewReceptionToday
	ViewReceptionQueue
	ViewStatusBoard
	ViewReceptionRecords
)

// ReceptionStatus is the order status that hands an order over to reception.
const ReceptionStatus = "Reception"

type DayMode int

const (
	AnyDay DayMode = iota
	OnlyDay
	ExceptDay
)

type StatusMode int

const (
	AnyStatus StatusMode = iota
	StatusEquals
	StatusNotEquals
)

// Params carries the per-request inputs of a partition.
type Params struct {
	// Today is any instant within the current local day.
	Today      time.Time
	Status     string
	CategoryID int64
}

// Record is the subset of an order the partition looks at.
type Record struct {
	DesignerID *int64
	Status     string
	CategoryID int64
	CreatedAt  time.Time
}

// Criteria is the resolved partition. The zero value matches every row.
type Criteria struct {
	Deny       bool
	DesignerID *int64
	CategoryID *int64

	DayMode  DayMode
	DayStart time.Time
	DayEnd   time.Time

	StatusMode StatusMode
	Status     string
}

// Partition resolves which rows p may see through v.
func Partition(p Principal, v View, params Params) Criteria {
	var c Criteria

	switch v {
	case ViewOrders:
		c = roleBase(p)
		c.exceptDay(params.Today)
	case ViewOrdersToday:
		c = roleBase(p)
		c.onlyDay(params.Today)
	case ViewOrdersByStatus:
		c = roleBase(p)
		c.statusEquals(params.Status)
	case ViewOrdersByCategory:
		c = roleBase(p)
		id := params.CategoryID
		c.CategoryID = &id
	case ViewStatusDetail:
		switch {
		case p.Admin(), p.designer(), p.Role == RoleReception:
		default:
			c.DesignerID = ownerID(p)
		}
		c.statusEquals(params.Status)
	case ViewReceptionBacklog:
		if p.Role != RoleReception {
			return deny()
		}
		c.exceptDay(params.Today)
		c.statusNotEquals(ReceptionStatus)
	case ViewReceptionToday:
		if p.Role != RoleReception {
			return deny()
		}
		c.onlyDay(params.Today)
		c.statusNotEquals(ReceptionStatus)
	case ViewReceptionQueue:
		if p.Role != RoleSuperDesigner && p.Role != RoleReception {
			return deny()
		}
		c.statusEquals(ReceptionStatus)
	case ViewStatusBoard:
		if !p.Admin() && !p.Role.Known() {
			return deny()
		}
		if p.Role == RoleDesigner && !p.Admin() {
			c.DesignerID = ownerID(p)
		}
		c.statusEquals(params.Status)
	case ViewReceptionRecords:
		switch {
		case p.Admin(), p.Role == RoleReception:
		case p.designer():
			c.DesignerID = ownerID(p)
		default:
			return deny()
		}
	default:
		return deny()
	}

	if c.StatusMode == StatusEquals && c.Status == "" {
		return deny()
	}
	return c
}

// Matches applies the criteria to a single record.
func (c Criteria) Matches(r Record) bool {
	if c.Deny {
		return false
	}
	if c.DesignerID != nil && (r.DesignerID == nil || *r.DesignerID != *c.DesignerID) {
		return false
	}
	if c.CategoryID != nil && r.CategoryID != *c.CategoryID {
		return false
	}

	inDay := !r.CreatedAt.Before(c.DayStart) && r.CreatedAt.Before(c.DayEnd)
	switch c.DayMode {
	case OnlyDay:
		if !inDay {
			return false
		}
	case ExceptDay:
		if inDay {
			return false
		}
	}

	switch c.StatusMode {
	case StatusEquals:
		return FoldStatus(r.Status) == FoldStatus(c.Status)
	case StatusNotEquals:
		return FoldStatus(r.Status) != FoldStatus(c.Status)
	}
	return true
}

// FoldStatus is the case normalization shared with the SQL filters, which
// compare lower(status) against the folded value.
func FoldStatus(status string) string {
	return strings.ToLower(status)
}

// Visible reports whether p may see r through v.
func Visible(p Principal, v View, params Params, r Record) bool {
	return Partition(p, v, params).Matches(r)
}

// CanWrite reports whether p may update or delete r through v. Callers should
// answer "not found" when the record is not Visible at all.
func CanWrite(p Principal, v View, params Params, r Record) bool {
	if !Visible(p, v, params, r) {
		return false
	}

	switch v {
	case ViewOrders, ViewOrdersToday:
		return p.Admin() || owns(p, r)
	case ViewStatusDetail, ViewReceptionToday, ViewReceptionQueue:
		return true
	case ViewStatusBoard:
		if p.Admin() || p.Role == RoleSuperDesigner {
			return true
		}
		return FoldStatus(p.Role.String()) == FoldStatus(r.Status)
	default:
		return false
	}
}

// StartOfDay returns midnight of t's day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func roleBase(p Principal) Criteria {
	switch {
	case p.Admin():
		return Criteria{}
	case p.designer():
		return Criteria{DesignerID: ownerID(p)}
	default:
		return deny()
	}
}

func deny() Criteria {
	return Criteria{Deny: true}
}

func ownerID(p Principal) *int64 {
	id := p.UserID
	return &id
}

func owns(p Principal, r Record) bool {
	return r.DesignerID != nil && *r.DesignerID == p.UserID
}

func (c *Criteria) onlyDay(today time.Time) {
	c.DayMode = OnlyDay
	c.setDay(today)
}

func (c *Criteria) exceptDay(today time.Time) {
	c.DayMode = ExceptDay
	c.setDay(today)
}

func (c *Criteria) setDay(today time.Time) {
	loc := today.Location()
	c.DayStart = StartOfDay(today, loc)
	c.DayEnd = c.DayStart.AddDate(0, 0, 1)
}

func (c *Criteria) statusEquals(status string) {
	c.StatusMode = StatusEquals
	c.Status = status
}

func (c *Criteria) statusNotEquals(status string) {
	c.StatusMode = StatusNotEquals
	c.Status = status
}
