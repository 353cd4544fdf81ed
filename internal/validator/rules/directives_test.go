package rules_test

import (
	"testing"

	"github.com/hanpama/gqlfront/internal/validator/rules"
	vt "github.com/hanpama/gqlfront/internal/validator/validatortest"
)

const directivesQuery = "query Q @onMutation {\n  dog @unknown @onField @onField { name @repeatable @repeatable }\n  ... @onQuery { dog { name } }\n}"

func TestKnownDirectives(t *testing.T) {
	vt.ExpectValid(t, rules.KnownDirectives, `
query Foo($var: Boolean @onVariableDefinition) @onQuery {
  name: __typename @onField
  dog @include(if: $var) { ...Frag @onFragmentSpread ... @onInlineFragment { name } }
}
mutation Bar @onMutation { renameDog(name: "x") { name } }
subscription Baz @onSubscription { newDog { name } }
fragment Frag on Dog { name @skip(if: true) }
`)

	vt.ExpectErrors(t, rules.KnownDirectives, directivesQuery,
		vt.E(`Directive "onMutation" may not be used on QUERY.`, 1, 9),
		vt.E(`Unknown directive "unknown".`, 2, 7),
		vt.E(`Directive "onQuery" may not be used on INLINE_FRAGMENT.`, 3, 7),
	)
}

func TestKnownDirectivesDefinedInDocument(t *testing.T) {
	vt.ExpectErrors(t, rules.KnownDirectives, `
directive @local on FIELD
{ dog @local { name @local } ... @local { __typename } }
`,
		vt.E(`Directive "local" may not be used on INLINE_FRAGMENT.`, 3, 34),
	)
}

func TestUniqueDirectivesPerLocation(t *testing.T) {
	vt.ExpectValid(t, rules.UniqueDirectivesPerLocation, `{ dog @onField { name @onField } ... @onInlineFragment { __typename } }`)

	vt.ExpectErrors(t, rules.UniqueDirectivesPerLocation, directivesQuery,
		vt.E(`The directive "onField" can only be used once at this location.`, 2, 16, 2, 25),
	)
}
