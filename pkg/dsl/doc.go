/*
Package dsl provides a fluent builder for transition tables.

It allows machines to be defined in Go instead of YAML documents, which is
useful for generated machines, unit tests and IDE autocompletion.

Example usage:

	b := dsl.New("contains-11").Start("q1")

	b.State("q1").
		On("0").Right().Go("q1").
		On("1").Right().Go("q2").
		Otherwise().Go(dsl.Reject)

	b.State("q2").
		On("0").Right().Go("q1").
		On("1").Go(dsl.Accept).
		Otherwise().Go(dsl.Reject)

	def, err := b.Build()
*/
package dsl
