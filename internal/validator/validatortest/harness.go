// Package validatortest provides the schema and assertions shared by the
// validator and rule tests.
package validatortest

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hanpama/gqlfront/internal/gqlerror"
	"github.com/hanpama/gqlfront/internal/introspection"
	"github.com/hanpama/gqlfront/internal/language/ast"
	"github.com/hanpama/gqlfront/internal/language/parser"
	"github.com/hanpama/gqlfront/internal/language/source"
	"github.com/hanpama/gqlfront/internal/schema"
	"github.com/hanpama/gqlfront/internal/validator"
	"github.com/stretchr/testify/require"
)

// SDL is the type system the tests validate against: pets, humans and
// aliens, plus a field for every argument shape.
const SDL = `
interface Being {
  name(surname: Boolean): String
}

interface Pet {
  name(surname: Boolean): String
}

interface Canine {
  name(surname: Boolean): String
}

enum DogCommand {
  SIT
  HEEL
  DOWN
}

type Dog implements Being & Pet & Canine {
  name(surname: Boolean): String
  nickname: String
  barkVolume: Int
  barks: Boolean
  doesKnowCommand(dogCommand: DogCommand): Boolean
  isHousetrained(atOtherHomes: Boolean = true): Boolean
  isAtLocation(x: Int, y: Int): Boolean
}

type Cat implements Being & Pet {
  name(surname: Boolean): String
  nickname: String
  meows: Boolean
  meowVolume: Int
  furColor: FurColor
}

union CatOrDog = Dog | Cat

interface Intelligent {
  iq: Int
}

type Human implements Being & Intelligent {
  name(surname: Boolean): String
  pets: [Pet]
  relatives: [Human]
  iq: Int
}

type Alien implements Being & Intelligent {
  iq: Int
  name(surname: Boolean): String
  numEyes: Int
}

union DogOrHuman = Dog | Human

union HumanOrAlien = Human | Alien

enum FurColor {
  BROWN
  BLACK
  TAN
  SPOTTED
  NO_FUR
  UNKNOWN
}

input ComplexInput {
  requiredField: Boolean!
  nonNullField: Boolean! = false
  intField: Int
  stringField: String
  booleanField: Boolean
  stringListField: [String]
}

input OneOfInput @oneOf {
  a: String
  b: Int
}

type ComplicatedArgs {
  intArgField(intArg: Int): String
  nonNullIntArgField(nonNullIntArg: Int!): String
  stringArgField(stringArg: String): String
  booleanArgField(booleanArg: Boolean): String
  enumArgField(enumArg: FurColor): String
  floatArgField(floatArg: Float): String
  idArgField(idArg: ID): String
  stringListArgField(stringListArg: [String]): String
  stringListNonNullArgField(stringListNonNullArg: [String!]): String
  complexArgField(complexArg: ComplexInput): String
  oneOfArgField(oneOfArg: OneOfInput): String
  multipleReqs(req1: Int!, req2: Int!): String
  nonNullFieldWithDefault(arg: Int! = 0): String
  multipleOpts(opt1: Int = 0, opt2: Int = 0): String
  multipleOptAndReq(req1: Int!, req2: Int!, opt1: Int = 0, opt2: Int = 0): String
}

scalar Invalid

scalar Any

type QueryRoot {
  human(id: ID): Human
  alien: Alien
  dog: Dog
  cat: Cat
  pet: Pet
  catOrDog: CatOrDog
  dogOrHuman: DogOrHuman
  humanOrAlien: HumanOrAlien
  complicatedArgs: ComplicatedArgs
  invalidArg(arg: Invalid): String
  anyArg(arg: Any): String
}

type MutationRoot {
  renameDog(name: String!): Dog
}

type SubscriptionRoot {
  newDog: Dog
  newCat: Cat
}

schema {
  query: QueryRoot
  mutation: MutationRoot
  subscription: SubscriptionRoot
}

directive @onQuery on QUERY
directive @onMutation on MUTATION
directive @onSubscription on SUBSCRIPTION
directive @onField on FIELD
directive @onFragmentSpread on FRAGMENT_SPREAD
directive @onInlineFragment on INLINE_FRAGMENT
directive @onVariableDefinition on VARIABLE_DEFINITION
directive @repeatable repeatable on FIELD
`

var (
	once   sync.Once
	shared *schema.Schema
)

// Schema returns the test schema with introspection types. The Invalid
// scalar rejects every literal.
func Schema() *schema.Schema {
	once.Do(func() {
		s, err := schema.BuildFromSDL("harness.graphql", SDL)
		if err != nil {
			panic(err)
		}
		s.Type("Invalid").SetLiteralValidator(func(v ast.Value) error {
			raw := ast.ValueString(v)
			if sv, ok := v.(*ast.StringValue); ok {
				raw = sv.Value
			}
			return fmt.Errorf("Invalid scalar is always invalid: %s", raw)
		})
		shared = introspection.Extend(s)
	})
	return shared
}

// Err is the comparable form of a validation error.
type Err struct {
	Message   string
	Locations []source.Location
}

// E builds an Err; locs alternates line and column.
func E(message string, locs ...int) Err {
	e := Err{Message: message}
	for i := 0; i+1 < len(locs); i += 2 {
		e.Locations = append(e.Locations, source.Location{Line: locs[i], Column: locs[i+1]})
	}
	return e
}

// Run parses query and validates it against the test schema.
func Run(t testing.TB, rules []validator.Rule, query string, opts ...validator.Option) gqlerror.List {
	t.Helper()
	doc, err := parser.Parse(source.New(query))
	require.NoError(t, err, "query must parse")
	return validator.Validate(Schema(), doc, rules, opts...)
}

// Simplify strips errors down to message and locations.
func Simplify(errs gqlerror.List) []Err {
	var out []Err
	for _, e := range errs {
		out = append(out, Err{Message: e.Message, Locations: e.Locations})
	}
	return out
}

// ExpectErrors validates query with rule and compares the reported errors
// with want, in order.
func ExpectErrors(t testing.TB, rule validator.Rule, query string, want ...Err) {
	t.Helper()
	got := Simplify(Run(t, []validator.Rule{rule}, query))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("%s errors mismatch (-want +got):\n%s", rule.Name(), diff)
	}
}

// ExpectValid validates query with rule and fails on any error.
func ExpectValid(t testing.TB, rule validator.Rule, query string) {
	t.Helper()
	ExpectErrors(t, rule, query)
}
