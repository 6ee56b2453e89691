// Package milp describes a mixed-integer linear program in a
// solver-agnostic form: a variable table, a set of linear constraint
// rows and a single linear objective. Rows carry no ordering semantics.
package milp
