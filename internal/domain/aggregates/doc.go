// Package aggregates holds the error taxonomy and record validation shared by
// every entity. Repositories raise these kinds and callers branch on the code.
package aggregates
