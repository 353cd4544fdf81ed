// Package rules holds the validation rules for executable documents.
//
// Messages follow the wording of the GraphQL reference implementation so
// that clients can match on them.
package rules

import (
	"sort"

	"github.com/hanpama/gqlfront/internal/validator"
)

// Specified returns the rules every executable document must satisfy, in
// the order they run.
func Specified() []validator.Rule {
	return []validator.Rule{
		ExecutableDefinitions,
		UniqueOperationNames,
		LoneAnonymousOperation,
		SingleFieldSubscriptions,
		KnownTypeNames,
		FragmentsOnCompositeTypes,
		VariablesAreInputTypes,
		ScalarLeafs,
		FieldsOnCorrectType,
		UniqueFragmentNames,
		KnownFragmentNames,
		NoUnusedFragments,
		PossibleFragmentSpreads,
		NoFragmentCycles,
		UniqueVariableNames,
		NoUndefinedVariables,
		NoUnusedVariables,
		KnownDirectives,
		UniqueDirectivesPerLocation,
		KnownArgumentNames,
		UniqueArgumentNames,
		ValuesOfCorrectType,
		ProvidedRequiredArguments,
		VariablesInAllowedPosition,
		OverlappingFieldsCanBeMerged,
		UniqueInputFieldNames,
	}
}

// ByName returns the specified rule with the given name. The optional
// rules take parameters and are built with their constructors instead.
func ByName(name string) (validator.Rule, bool) {
	for _, r := range Specified() {
		if r.Name() == name {
			return r, true
		}
	}
	return nil, false
}

// Names lists the specified rule names in lexical order.
func Names() []string {
	var names []string
	for _, r := range Specified() {
		names = append(names, r.Name())
	}
	sort.Strings(names)
	return names
}

// Without returns rules minus those named in disabled.
func Without(rules []validator.Rule, disabled ...string) []validator.Rule {
	skip := make(map[string]bool, len(disabled))
	for _, name := range disabled {
		skip[name] = true
	}
	var out []validator.Rule
	for _, r := range rules {
		if !skip[r.Name()] {
			out = append(out, r)
		}
	}
	return out
}
