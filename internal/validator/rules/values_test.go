package rules_test

import (
	"testing"

	"github.com/hanpama/gqlfront/internal/validator/rules"
	vt "github.com/hanpama/gqlfront/internal/validator/validatortest"
)

func TestValuesOfCorrectTypeValid(t *testing.T) {
	for name, query := range map[string]string{
		"int":              `{ complicatedArgs { intArgField(intArg: 2) } }`,
		"negative int":     `{ complicatedArgs { intArgField(intArg: -2147483648) } }`,
		"int into float":   `{ complicatedArgs { floatArgField(floatArg: 1) } }`,
		"int into id":      `{ complicatedArgs { idArgField(idArg: 1) } }`,
		"string into id":   `{ complicatedArgs { idArgField(idArg: "someIdString") } }`,
		"enum":             `{ dog { doesKnowCommand(dogCommand: SIT) } }`,
		"null":             `{ complicatedArgs { intArgField(intArg: null) } }`,
		"single for list":  `{ complicatedArgs { stringListArgField(stringListArg: "one") } }`,
		"list":             `{ complicatedArgs { stringListArgField(stringListArg: ["one", null, "two"]) } }`,
		"object":           `{ complicatedArgs { complexArgField(complexArg: { requiredField: true, stringListField: ["a"] }) } }`,
		"one of":           `{ complicatedArgs { oneOfArgField(oneOfArg: { b: 1 }) } }`,
		"custom scalar":    `{ anyArg(arg: { deep: [1, "x", ENUM] }) }`,
		"variable":         `query ($x: Int) { complicatedArgs { intArgField(intArg: $x) } }`,
		"variable default": `query ($x: [String] = ["a", "b"]) { complicatedArgs { stringListArgField(stringListArg: $x) } }`,
	} {
		t.Run(name, func(t *testing.T) {
			vt.ExpectValid(t, rules.ValuesOfCorrectType, query)
		})
	}
}

func TestValuesOfCorrectTypeInvalid(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  vt.Err
	}{
		{
			"string into int",
			`{ complicatedArgs { intArgField(intArg: "3") } }`,
			vt.E(`Expected type Int, found "3".`, 1, 41),
		},
		{
			"int out of range",
			`{ complicatedArgs { intArgField(intArg: 829384293849283498239482938) } }`,
			vt.E(`Expected type Int, found 829384293849283498239482938.`, 1, 41),
		},
		{
			"int into string",
			`{ complicatedArgs { stringArgField(stringArg: 1) } }`,
			vt.E(`Expected type String, found 1.`, 1, 47),
		},
		{
			"null into non-null",
			`{ complicatedArgs { nonNullIntArgField(nonNullIntArg: null) } }`,
			vt.E(`Expected type Int!, found null.`, 1, 55),
		},
		{
			"enum case",
			`{ dog { doesKnowCommand(dogCommand: sit) } }`,
			vt.E(`Expected type DogCommand, found sit; Did you mean the enum value SIT?`, 1, 37),
		},
		{
			"string into enum",
			`{ dog { doesKnowCommand(dogCommand: "SIT") } }`,
			vt.E(`Expected type DogCommand, found "SIT"; Did you mean the enum value SIT?`, 1, 37),
		},
		{
			"list item",
			`{ complicatedArgs { stringListArgField(stringListArg: ["one", 2]) } }`,
			vt.E(`Expected type String, found 2.`, 1, 63),
		},
		{
			"list into scalar",
			`{ complicatedArgs { intArgField(intArg: [1, "two"]) } }`,
			vt.E(`Expected type Int, found [1, "two"].`, 1, 41),
		},
		{
			"object into scalar",
			`{ complicatedArgs { intArgField(intArg: { a: 1 }) } }`,
			vt.E(`Expected type Int, found {a: 1}.`, 1, 41),
		},
		{
			"float into id",
			`{ complicatedArgs { idArgField(idArg: 1.0) } }`,
			vt.E(`Expected type ID, found 1.0.`, 1, 39),
		},
		{
			"missing required field",
			`{ complicatedArgs { complexArgField(complexArg: { intField: 4 }) } }`,
			vt.E(`Field ComplexInput.requiredField of required type Boolean! was not provided.`, 1, 49),
		},
		{
			"unknown field",
			`{ complicatedArgs { complexArgField(complexArg: { requiredField: true, unknownField: "value" }) } }`,
			vt.E(`Field "unknownField" is not defined by type ComplexInput; Did you mean nonNullField, intField, or booleanField?`, 1, 72),
		},
		{
			"one of with two keys",
			`{ complicatedArgs { oneOfArgField(oneOfArg: { a: "x", b: 1 }) } }`,
			vt.E(`OneOf Input Object "OneOfInput" must specify exactly one key.`, 1, 45),
		},
		{
			"one of with null",
			`{ complicatedArgs { oneOfArgField(oneOfArg: { a: null }) } }`,
			vt.E(`Field "OneOfInput.a" must be non-null.`, 1, 45),
		},
		{
			"variable default",
			`query ($a: Int = "one") { __typename }`,
			vt.E(`Expected type Int, found "one".`, 1, 18),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vt.ExpectErrors(t, rules.ValuesOfCorrectType, tt.query, tt.want)
		})
	}
}

func TestUniqueInputFieldNames(t *testing.T) {
	vt.ExpectValid(t, rules.UniqueInputFieldNames, `{ anyArg(arg: { f1: "value", f2: { f1: "nested" } }) }`)

	vt.ExpectErrors(t, rules.UniqueInputFieldNames,
		`{ complicatedArgs { complexArgField(complexArg: { requiredField: true, requiredField: false }) } }`,
		vt.E(`There can be only one input field named "requiredField".`, 1, 51, 1, 72),
	)
}
