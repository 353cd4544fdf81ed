package rules_test

import (
	"testing"

	"github.com/hanpama/gqlfront/internal/validator/rules"
	vt "github.com/hanpama/gqlfront/internal/validator/validatortest"
)

func TestQueryDepth(t *testing.T) {
	vt.ExpectValid(t, rules.QueryDepth(3), `{ human { pets { name } } }`)
	vt.ExpectValid(t, rules.QueryDepth(2), "{ human { ...C } }\nfragment C on Human { relatives { ...C } }")

	vt.ExpectErrors(t, rules.QueryDepth(2), `{ human { pets { name } } }`,
		vt.E(`Max query depth should be 2 but got 3.`, 1, 1),
	)
	vt.ExpectErrors(t, rules.QueryDepth(2),
		"query Q { dog { name } human { ...H } }\nfragment H on Human { relatives { ... on Human { name } } }",
		vt.E(`Max query depth should be 2 but got 3.`, 1, 1),
	)
}

func TestDisableIntrospection(t *testing.T) {
	vt.ExpectValid(t, rules.DisableIntrospection(), `{ __typename dog { __typename name } }`)

	vt.ExpectErrors(t, rules.DisableIntrospection(),
		`{ __typename __schema { queryType { name } } dog { __type(name: "x") { name } } }`,
		vt.E(`GraphQL introspection is not allowed, but the query contained __schema or __type`, 1, 14),
		vt.E(`GraphQL introspection is not allowed, but the query contained __schema or __type`, 1, 52),
	)
}
