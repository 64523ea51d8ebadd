package postgresql_test

import "go.uber.org/mock/gomock"

// anyArgs matches n positional query arguments.
func anyArgs(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = gomock.Any()
	}
	return args
}
