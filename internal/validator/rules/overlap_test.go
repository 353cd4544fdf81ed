package rules_test

import (
	"testing"

	"github.com/hanpama/gqlfront/internal/validator/rules"
	vt "github.com/hanpama/gqlfront/internal/validator/validatortest"
)

const useAliases = " Use different aliases on the fields to fetch both if this was intentional."

func TestOverlappingFieldsCanBeMergedValid(t *testing.T) {
	for name, query := range map[string]string{
		"unique fields":           `{ dog { name nickname } }`,
		"identical fields":        `{ dog { name name } }`,
		"same arguments":          `{ dog { doesKnowCommand(dogCommand: SIT) doesKnowCommand(dogCommand: SIT) } }`,
		"argument order":          `{ dog { isAtLocation(x: 0, y: 1) isAtLocation(y: 1, x: 0) } }`,
		"different aliases":       `{ dog { sit: doesKnowCommand(dogCommand: SIT) heel: doesKnowCommand(dogCommand: HEEL) } }`,
		"exclusive parents":       `{ catOrDog { ... on Dog { name: nickname } ... on Cat { name } } }`,
		"same fragment twice":     "{ dog { ...A ...A } }\nfragment A on Dog { name }",
		"fragment cycle":          "{ dog { ...A } }\nfragment A on Dog { name ...B }\nfragment B on Dog { name ...A }",
		"unknown fields":          `{ dog { x: unknownA x: unknownA } }`,
		"nested identical fields": `{ human { pets { name } } human { pets { name } } }`,
	} {
		t.Run(name, func(t *testing.T) {
			vt.ExpectValid(t, rules.OverlappingFieldsCanBeMerged, query)
		})
	}
}

func TestOverlappingFieldsCanBeMergedInvalid(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  vt.Err
	}{
		{
			"different fields",
			`{ dog { name: nickname name } }`,
			vt.E(`Fields "name" conflict because nickname and name are different fields.`+useAliases, 1, 9, 1, 24),
		},
		{
			"different arguments",
			`{ dog { doesKnowCommand(dogCommand: SIT) doesKnowCommand(dogCommand: HEEL) } }`,
			vt.E(`Fields "doesKnowCommand" conflict because they have differing arguments.`+useAliases, 1, 9, 1, 42),
		},
		{
			"conflicting types on exclusive parents",
			`{ catOrDog { ... on Dog { x: barkVolume } ... on Cat { x: nickname } } }`,
			vt.E(`Fields "x" conflict because they return conflicting types Int and String.`+useAliases, 1, 27, 1, 56),
		},
		{
			"subfields",
			`{ dog { name } dog { name: nickname } }`,
			vt.E(`Fields "dog" conflict because subfields "name" conflict because name and nickname are different fields.`+useAliases,
				1, 3, 1, 9, 1, 16, 1, 22),
		},
		{
			"field and fragment",
			"{ dog { ...A name: nickname } }\nfragment A on Dog { name }",
			vt.E(`Fields "name" conflict because nickname and name are different fields.`+useAliases, 1, 14, 2, 21),
		},
		{
			"two fragments",
			"{ dog { ...A ...B } }\nfragment A on Dog { x: name }\nfragment B on Dog { x: barks }",
			vt.E(`Fields "x" conflict because name and barks are different fields.`+useAliases, 2, 21, 3, 21),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vt.ExpectErrors(t, rules.OverlappingFieldsCanBeMerged, tt.query, tt.want)
		})
	}
}
