package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hanpama/gqlfront/internal/gqlerror"
	"github.com/hanpama/gqlfront/internal/language/ast"
	"github.com/hanpama/gqlfront/internal/language/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const kitchenSinkQuery = `
query queryName($foo: ComplexType, $site: Site = MOBILE) @onQuery {
  whoever123is: node(id: [123, 456]) {
    id ,
    ... on User @onInlineFragment {
      field2 {
        id ,
        alias: field1(first:10, after:$foo,) @include(if: $foo) {
          id,
          ...frag @onFragmentSpread
        }
      }
    }
    ... @skip(unless: $foo) {
      id
    }
    ... {
      id
    }
  }
}

mutation likeStory @onMutation {
  like(story: 123) @onField {
    story {
      id @onField
    }
  }
}

subscription StoryLikeSubscription($input: StoryLikeSubscribeInput @onVariableDefinition) @onSubscription {
  storyLikeSubscribe(input: $input) {
    story {
      likers {
        count
      }
      likeSentence {
        text
      }
    }
  }
}

fragment frag on Friend @onFragmentDefinition {
  foo(size: $size, bar: $b, obj: {key: "value", block: """
      block string uses \"""
  """})
}

{
  unnamed(truthy: true, falsey: false, nullish: null),
  query
}
`

const kitchenSinkSchema = `
schema {
  query: QueryType
  mutation: MutationType
}

"""
This is a description
of the ` + "`Foo`" + ` type.
"""
type Foo implements Bar & Baz {
  "Description of the ` + "`one`" + ` field."
  one: Type
  two(
    "This is a description of the ` + "`argument`" + ` argument."
    argument: InputType!
  ): Type
  three(argument: InputType, other: String): Int
  four(argument: String = "string"): String
  five(argument: [String] = ["string", "string"]): String
  six(argument: InputType = {key: "value"}): Type
  seven(argument: Int = null): Type
}

type AnnotatedObject @onObject(arg: "value") {
  annotatedField(arg: Type = "default" @onArgumentDefinition): Type @onField
}

type UndefinedType

extend type Foo {
  seven(argument: [String]): Type
}

extend type Foo @onType

interface Bar {
  one: Type
  four(argument: String = "string"): String
}

interface AnnotatedInterface @onInterface {
  annotatedField(arg: Type @onArgumentDefinition): Type @onField
}

extend interface Bar {
  two(argument: InputType!): Type
}

union Feed =
  | Story
  | Article
  | Advert

union AnnotatedUnion @onUnion = A | B

union UndefinedUnion

extend union Feed = Photo | Video

scalar CustomScalar

scalar AnnotatedScalar @onScalar

extend scalar CustomScalar @onScalar

enum Site {
  DESKTOP
  MOBILE
}

enum AnnotatedEnum @onEnum {
  ANNOTATED_VALUE @onEnumValue
  OTHER_VALUE
}

extend enum Site {
  VR
}

input InputType {
  key: String!
  answer: Int = 42
}

input AnnotatedInput @onInputObject {
  annotatedField: Type @onInputFieldDefinition
}

extend input InputType {
  other: Float = 1.23e4 @onInputFieldDefinition
}

directive @skip(if: Boolean!) on FIELD | FRAGMENT_SPREAD | INLINE_FRAGMENT

directive @include(if: Boolean!)
  on FIELD
   | FRAGMENT_SPREAD
   | INLINE_FRAGMENT

directive @include2(if: Boolean!) on
  | FIELD
  | FRAGMENT_SPREAD
  | INLINE_FRAGMENT

directive @myRepeatableDir(name: String!) repeatable on
  | OBJECT
  | INTERFACE
`

func parse(t *testing.T, body string, opts ...Option) *ast.Document {
	t.Helper()
	doc, err := Parse(source.New(body), opts...)
	require.NoError(t, err)
	return doc
}

func syntaxError(t *testing.T, err error) *gqlerror.Error {
	t.Helper()
	require.Error(t, err)
	var gerr *gqlerror.Error
	require.True(t, errors.As(err, &gerr), "not a gqlerror: %v", err)
	require.True(t, gerr.IsSyntax())
	return gerr
}

func TestParseProvidesUsefulErrors(t *testing.T) {
	tests := []struct {
		body    string
		message string
		line    int
		column  int
	}{
		{"{", "Expected Name, found <EOF>", 1, 2},
		{"{ ...MissingOn }\nfragment MissingOn Type", `Expected "on", found Name "Type"`, 2, 20},
		{"{ field: {} }", "Expected Name, found {", 1, 10},
		{"notanoperation Foo { field }", `Unexpected Name "notanoperation"`, 1, 1},
		{"...", "Unexpected ...", 1, 1},
		{"", "Unexpected <EOF>", 1, 1},
		{"fragment on on on { on }", `Unexpected Name "on"`, 1, 10},
		{"{ ...on }", "Expected Name, found }", 1, 9},
		{"query Foo($x: Complex = { a: { b: [ $var ] } }) { field }", "Unexpected $", 1, 37},
		{"query Foo($x: Complex = 1 { field }", "Expected $, found {", 1, 27},
		{`{ field(arg: "unterminated) }`, "Unterminated string.", 1, 30},
		{"extend schema @foo", `Unexpected Name "schema"`, 1, 8},
		{"extend type Foo", "Unexpected <EOF>", 1, 16},
		{"extend scalar Foo { a: B }", "Unexpected {", 1, 19},
		{"type Foo {}", "Expected Name, found }", 1, 11},
		{"enum E { true }", `Name "true" is reserved and cannot be used for an enum value.`, 1, 10},
		{"directive @foo on FIELD | NOWHERE", `Unexpected Name "NOWHERE"`, 1, 27},
		{`"description" query { a }`, `Unexpected Name "query"`, 1, 15},
		{"type Foo implements & { a: B }", "Expected Name, found {", 1, 23},
		{"subscription { a } x", `Unexpected Name "x"`, 1, 20},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			_, err := Parse(source.New(tt.body))
			gerr := syntaxError(t, err)
			assert.Equal(t, tt.message, gerr.Message)
			assert.Equal(t, []source.Location{{Line: tt.line, Column: tt.column}}, gerr.Locations)
		})
	}
}

func TestParseErrorRendersExcerpt(t *testing.T) {
	_, err := Parse(source.New("{ ...MissingOn }\nfragment MissingOn Type", source.WithName("MyQuery.graphql")))
	require.Error(t, err)
	assert.Equal(t,
		"Syntax Error: Expected \"on\", found Name \"Type\"\n"+
			"\n"+
			"MyQuery.graphql (2:20)\n"+
			"1: { ...MissingOn }\n"+
			"2: fragment MissingOn Type\n"+
			"                      ^\n",
		err.Error())
}

func TestParseKitchenSink(t *testing.T) {
	doc := parse(t, kitchenSinkQuery)
	require.Len(t, doc.Definitions, 5)
	require.Len(t, doc.Operations(), 4)
	require.Len(t, doc.Fragments(), 1)

	op := doc.Operation("queryName")
	require.NotNil(t, op)
	assert.Equal(t, ast.Query, op.Operation)
	require.Len(t, op.VariableDefinitions, 2)
	assert.Equal(t, "ComplexType", op.VariableDefinitions[0].Type.String())
	assert.Equal(t, &ast.EnumValue{Loc: op.VariableDefinitions[1].DefaultValue.Location(), Value: "MOBILE"},
		op.VariableDefinitions[1].DefaultValue)

	node := op.SelectionSet.Selections[0].(*ast.Field)
	assert.Equal(t, "whoever123is", node.ResponseKey())
	assert.Equal(t, "node", node.Name.Value)
	assert.Equal(t, "[123, 456]", ast.ValueString(node.Arguments[0].Value))

	inline := node.SelectionSet.Selections[1].(*ast.InlineFragment)
	assert.Equal(t, "User", inline.TypeCondition.Name.Value)
	assert.Equal(t, "onInlineFragment", inline.Directives[0].Name.Value)

	bare := node.SelectionSet.Selections[3].(*ast.InlineFragment)
	assert.Nil(t, bare.TypeCondition)
	assert.Empty(t, bare.Directives)

	sub := doc.Operation("StoryLikeSubscription")
	require.NotNil(t, sub)
	assert.Equal(t, "onVariableDefinition", sub.VariableDefinitions[0].Directives[0].Name.Value)

	frag := doc.Fragment("frag")
	require.NotNil(t, frag)
	obj := frag.SelectionSet.Selections[0].(*ast.Field).Arguments[2].Value.(*ast.ObjectValue)
	block := obj.Fields[1].Value.(*ast.StringValue)
	assert.True(t, block.Block)
	assert.Equal(t, `block string uses """`, block.Value)

	anon := doc.Operations()[3]
	assert.Nil(t, anon.Name)
	args := anon.SelectionSet.Selections[0].(*ast.Field).Arguments
	assert.Equal(t, &ast.BooleanValue{Loc: args[0].Value.Location(), Value: true}, args[0].Value)
	assert.Equal(t, &ast.BooleanValue{Loc: args[1].Value.Location(), Value: false}, args[1].Value)
	assert.Equal(t, &ast.NullValue{Loc: args[2].Value.Location()}, args[2].Value)
	// keywords are valid field names
	assert.Equal(t, "query", anon.SelectionSet.Selections[1].(*ast.Field).Name.Value)
}

func TestParseSchemaKitchenSink(t *testing.T) {
	doc := parse(t, kitchenSinkSchema)

	var kinds []ast.Kind
	for _, def := range doc.Definitions {
		kinds = append(kinds, def.Kind())
	}
	assert.Equal(t, []ast.Kind{
		ast.KindSchemaDefinition,
		ast.KindObjectTypeDefinition,
		ast.KindObjectTypeDefinition,
		ast.KindObjectTypeDefinition,
		ast.KindObjectTypeExtension,
		ast.KindObjectTypeExtension,
		ast.KindInterfaceTypeDefinition,
		ast.KindInterfaceTypeDefinition,
		ast.KindInterfaceTypeExtension,
		ast.KindUnionTypeDefinition,
		ast.KindUnionTypeDefinition,
		ast.KindUnionTypeDefinition,
		ast.KindUnionTypeExtension,
		ast.KindScalarTypeDefinition,
		ast.KindScalarTypeDefinition,
		ast.KindScalarTypeExtension,
		ast.KindEnumTypeDefinition,
		ast.KindEnumTypeDefinition,
		ast.KindEnumTypeExtension,
		ast.KindInputObjectTypeDefinition,
		ast.KindInputObjectTypeDefinition,
		ast.KindInputObjectTypeExtension,
		ast.KindDirectiveDefinition,
		ast.KindDirectiveDefinition,
		ast.KindDirectiveDefinition,
		ast.KindDirectiveDefinition,
	}, kinds)

	foo := doc.Definitions[1].(*ast.ObjectTypeDefinition)
	assert.Equal(t, "This is a description\nof the `Foo` type.", foo.Description.Value)
	assert.True(t, foo.Description.Block)
	require.Len(t, foo.Interfaces, 2)
	assert.Equal(t, "Baz", foo.Interfaces[1].Name.Value)
	assert.Equal(t, "Description of the `one` field.", foo.Fields[0].Description.Value)
	assert.False(t, foo.Fields[0].Description.Block)
	assert.Equal(t, "InputType!", foo.Fields[1].Arguments[0].Type.String())
	assert.Equal(t, `["string", "string"]`, ast.ValueString(foo.Fields[4].Arguments[0].DefaultValue))

	feed := doc.Definitions[9].(*ast.UnionTypeDefinition)
	require.Len(t, feed.Types, 3)
	assert.Equal(t, "Advert", feed.Types[2].Name.Value)

	undefinedUnion := doc.Definitions[11].(*ast.UnionTypeDefinition)
	assert.Empty(t, undefinedUnion.Types)

	include := doc.Definitions[23].(*ast.DirectiveDefinition)
	require.Len(t, include.Locations, 3)
	assert.Equal(t, "INLINE_FRAGMENT", include.Locations[2].Value)
	assert.False(t, include.Repeatable)
	assert.True(t, doc.Definitions[25].(*ast.DirectiveDefinition).Repeatable)
}

func TestParseRecordsLocations(t *testing.T) {
	doc := parse(t, "{ id, friend: name }")
	assert.Equal(t, 0, doc.Loc.Start)
	assert.Equal(t, 20, doc.Loc.End)

	op := doc.Definitions[0].(*ast.OperationDefinition)
	assert.Equal(t, 0, op.Loc.Start)
	assert.Equal(t, 20, op.Loc.End)

	id := op.SelectionSet.Selections[0].(*ast.Field)
	assert.Equal(t, 2, id.Loc.Start)
	assert.Equal(t, 4, id.Loc.End)

	aliased := op.SelectionSet.Selections[1].(*ast.Field)
	assert.Equal(t, 6, aliased.Loc.Start)
	assert.Equal(t, 18, aliased.Loc.End)
	assert.Equal(t, source.Location{Line: 1, Column: 7}, aliased.Loc.StartLocation())

	// spans reference the document's token stream
	assert.Equal(t, "friend", doc.Tokens[aliased.Loc.StartToken].Value)
	assert.Equal(t, "name", doc.Tokens[aliased.Loc.EndToken].Value)
}

func TestParseWithNoLocation(t *testing.T) {
	doc := parse(t, "query Q { a(b: [1]) { ... on T { c } } }", WithNoLocation())
	assert.Nil(t, doc.Tokens)
	ast.Walk(doc, locationChecker{t})
}

type locationChecker struct{ t *testing.T }

func (c locationChecker) Enter(n ast.Node) ast.Action {
	assert.Nil(c.t, n.Location(), "%s has a location", n.Kind())
	return ast.Continue
}

func (locationChecker) Leave(ast.Node) {}

func TestParseIsIdempotent(t *testing.T) {
	for _, body := range []string{kitchenSinkQuery, kitchenSinkSchema} {
		src := source.New(body)
		first, err := Parse(src)
		require.NoError(t, err)
		second, err := Parse(src)
		require.NoError(t, err)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("documents differ (-first +second):\n%s", diff)
		}
	}
}

func TestParseMaxDepth(t *testing.T) {
	nested := strings.Repeat("{ a ", 5) + strings.Repeat("}", 5)

	_, err := Parse(source.New(nested), WithMaxDepth(5))
	require.NoError(t, err)

	_, err = Parse(source.New(nested), WithMaxDepth(4))
	gerr := syntaxError(t, err)
	assert.Equal(t, "Document exceeds the maximum nesting depth of 4.", gerr.Message)
	assert.Equal(t, []source.Location{{Line: 1, Column: 17}}, gerr.Locations)

	deepList := "{ a(v: " + strings.Repeat("[", 300) + strings.Repeat("]", 300) + ") }"
	_, err = Parse(source.New(deepList))
	gerr = syntaxError(t, err)
	assert.Equal(t, "Document exceeds the maximum nesting depth of 256.", gerr.Message)

	_, err = Parse(source.New(deepList), WithMaxDepth(0))
	require.NoError(t, err)
}

func TestParseValue(t *testing.T) {
	v, err := ParseValue(source.New(`[123 "abc" $var {a: [BAR, null]}]`))
	require.NoError(t, err)
	assert.Equal(t, `[123, "abc", $var, {a: [BAR, null]}]`, ast.ValueString(v))

	v, err = ParseValue(source.New("\"\"\"\n  block\n  string\n\"\"\""))
	require.NoError(t, err)
	assert.Equal(t, "block\nstring", v.(*ast.StringValue).Value)

	_, err = ParseConstValue(source.New(`{a: $var}`))
	assert.Equal(t, "Unexpected $", syntaxError(t, err).Message)

	_, err = ParseValue(source.New(`1 2`))
	assert.Equal(t, `Expected <EOF>, found Int "2"`, syntaxError(t, err).Message)
}

func TestParseType(t *testing.T) {
	for _, body := range []string{"String", "String!", "[String]", "[String!]!", "[[Int]!]"} {
		typ, err := ParseType(source.New(body))
		require.NoError(t, err)
		assert.Equal(t, body, typ.String())
	}

	typ, err := ParseType(source.New("[MyType!]"))
	require.NoError(t, err)
	list := typ.(*ast.ListType)
	nonNull := list.Type.(*ast.NonNullType)
	assert.Equal(t, "MyType", nonNull.Type.(*ast.NamedType).Name.Value)
	assert.Equal(t, 0, list.Loc.Start)
	assert.Equal(t, 9, list.Loc.End)
	assert.Equal(t, "MyType", ast.NamedTypeName(typ))

	_, err = ParseType(source.New("[String"))
	assert.Equal(t, "Expected ], found <EOF>", syntaxError(t, err).Message)
}

func TestParseAllowsKeywordsAsNames(t *testing.T) {
	keywords := []string{"on", "fragment", "query", "mutation", "subscription", "true", "false"}
	for _, kw := range keywords {
		fragName := kw
		if kw == "on" {
			fragName = "a"
		}
		body := "query " + kw + " {\n  ... " + fragName + "\n  ... on " + kw + " { field }\n}\n" +
			"fragment " + fragName + " on Type {\n  " + kw + "(" + kw + ": $" + kw + ")\n    @" + kw + "(" + kw + ": " + kw + ")\n}"
		_, err := Parse(source.New(body))
		assert.NoError(t, err, body)
	}
}
