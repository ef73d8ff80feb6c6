// Package condition implements visibility.Evaluator for the declarative
// x-ui-visible-if rules attached to schema nodes.
package condition
