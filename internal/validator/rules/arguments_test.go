package rules_test

import (
	"testing"

	"github.com/hanpama/gqlfront/internal/validator/rules"
	vt "github.com/hanpama/gqlfront/internal/validator/validatortest"
)

const argumentsQuery = "{\n  dog { doesKnowCommand(dogcommand: SIT) name @skip(iff: true, if: false) }\n  complicatedArgs { multipleReqs(req1: 1, req1: 2) }\n}"

func TestKnownArgumentNames(t *testing.T) {
	vt.ExpectValid(t, rules.KnownArgumentNames, `
{
  dog {
    isHousetrained(atOtherHomes: true) @include(if: true)
    doesKnowCommand(dogCommand: SIT)
    unknownField(whatever: 1)
  }
  __type(name: "Dog") { name }
}
`)

	vt.ExpectErrors(t, rules.KnownArgumentNames, argumentsQuery,
		vt.E(`Unknown argument "dogcommand" on field "doesKnowCommand" of type "Dog". Did you mean "dogCommand"?`, 2, 25),
		vt.E(`Unknown argument "iff" on directive "@skip". Did you mean "if"?`, 2, 53),
	)
}

func TestUniqueArgumentNames(t *testing.T) {
	vt.ExpectValid(t, rules.UniqueArgumentNames, `{ dog { isAtLocation(x: 1, y: 2) @skip(if: false) } }`)

	vt.ExpectErrors(t, rules.UniqueArgumentNames, argumentsQuery,
		vt.E(`There can be only one argument named "req1".`, 3, 34, 3, 43),
	)
}

func TestProvidedRequiredArguments(t *testing.T) {
	vt.ExpectValid(t, rules.ProvidedRequiredArguments, `
{
  complicatedArgs {
    multipleReqs(req2: 2, req1: 1)
    nonNullFieldWithDefault
    multipleOptAndReq(req1: 1, req2: 2)
  }
  dog @skip(if: true) { unknown }
}
`)

	vt.ExpectErrors(t, rules.ProvidedRequiredArguments,
		"{\n  complicatedArgs { multipleReqs(req1: 1) nonNullFieldWithDefault multipleOpts }\n  dog @include { name }\n}",
		vt.E(`Field "multipleReqs" argument "req2" of type "Int!" is required, but it was not provided.`, 2, 21),
		vt.E(`Directive "@include" argument "if" of type "Boolean!" is required, but it was not provided.`, 3, 7),
	)
}
