package rules_test

import (
	"testing"

	"github.com/hanpama/gqlfront/internal/validator/rules"
	vt "github.com/hanpama/gqlfront/internal/validator/validatortest"
)

const fragmentsQuery = "{ dog { ...F ...Unknown } }\nfragment F on Dog { name }\nfragment F on Dog { nickname }\nfragment Unused on Cat { name }"

func TestUniqueFragmentNames(t *testing.T) {
	vt.ExpectValid(t, rules.UniqueFragmentNames, `{ dog { ...A ...B } } fragment A on Dog { name } fragment B on Dog { nickname }`)

	vt.ExpectErrors(t, rules.UniqueFragmentNames, fragmentsQuery,
		vt.E(`There can be only one fragment named "F".`, 2, 10, 3, 10),
	)
}

func TestKnownFragmentNames(t *testing.T) {
	vt.ExpectErrors(t, rules.KnownFragmentNames, fragmentsQuery,
		vt.E(`Unknown fragment "Unknown".`, 1, 17),
	)
}

func TestNoUnusedFragments(t *testing.T) {
	vt.ExpectValid(t, rules.NoUnusedFragments, `
{ human(id: 4) { ...HumanFields1 } }
fragment HumanFields1 on Human { name ...HumanFields2 }
fragment HumanFields2 on Human { name ...HumanFields1 }
`)

	vt.ExpectErrors(t, rules.NoUnusedFragments, fragmentsQuery,
		vt.E(`Fragment "Unused" is never used.`, 4, 1),
	)
}

func TestPossibleFragmentSpreads(t *testing.T) {
	vt.ExpectValid(t, rules.PossibleFragmentSpreads, `
{
  dog { ... on Pet { name } ...CanineFields }
  pet { ... on Dog { barks } ... on CatOrDog { __typename } }
  humanOrAlien { ... on Intelligent { iq } ... on Being { name } }
}
fragment CanineFields on Canine { name }
`)

	vt.ExpectErrors(t, rules.PossibleFragmentSpreads,
		"{ dog { ... on Cat { meows } ...HumanFields } }\nfragment HumanFields on Human { iq }",
		vt.E(`Fragment cannot be spread here as objects of type "Dog" can never be of type "Cat".`, 1, 9),
		vt.E(`Fragment "HumanFields" cannot be spread here as objects of type "Dog" can never be of type "Human".`, 1, 30),
	)
}

func TestNoFragmentCycles(t *testing.T) {
	vt.ExpectValid(t, rules.NoFragmentCycles, `
{ dog { ...A } }
fragment A on Dog { ...B ...B }
fragment B on Dog { name }
`)

	vt.ExpectErrors(t, rules.NoFragmentCycles,
		"{ dog { ...A } }\nfragment A on Dog { name ...A }",
		vt.E(`Cannot spread fragment "A" within itself.`, 2, 26),
	)

	vt.ExpectErrors(t, rules.NoFragmentCycles,
		"{ dog { ...A } }\nfragment A on Dog { ...B }\nfragment B on Dog { ...C }\nfragment C on Dog { ...A ...A }",
		vt.E(`Cannot spread fragment "A" within itself via B, C.`, 2, 21, 3, 21, 4, 21),
		vt.E(`Cannot spread fragment "A" within itself via B, C.`, 2, 21, 3, 21, 4, 26),
	)
}
