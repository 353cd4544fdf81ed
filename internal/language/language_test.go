package language

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hanpama/gqlfront/internal/eventbus"
	"github.com/hanpama/gqlfront/internal/events"
	"github.com/hanpama/gqlfront/internal/language/source"
	"github.com/hanpama/gqlfront/internal/validator/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const petSDL = `
type Query {
  pet(id: ID!): Pet
  pets: [Pet!]!
}

type Pet {
  id: ID!
  name: String
}
`

func loadPets(t *testing.T) *source.Source {
	t.Helper()
	return source.New(petSDL, source.WithName("pets.graphql"))
}

func TestCheckValidDocument(t *testing.T) {
	s, err := LoadSchema(context.Background(), loadPets(t))
	require.NoError(t, err)

	res := Check(context.Background(), s, source.New(`query One { pet(id: 1) { name } } query Two { pets { id } }`))
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
	require.NotNil(t, res.Document)
	assert.Equal(t, []Operation{{Name: "One", Type: "query"}, {Name: "Two", Type: "query"}}, res.Operations)
}

func TestCheckReportsValidationErrors(t *testing.T) {
	s, err := LoadSchema(context.Background(), loadPets(t))
	require.NoError(t, err)

	res := Check(context.Background(), s, source.New("{\n  pet { nam }\n}"))
	assert.False(t, res.Valid)
	assert.Equal(t, []string{
		`Cannot query field "nam" on type "Pet". Did you mean "name"?`,
		`Field "pet" argument "id" of type "ID!" is required, but it was not provided.`,
	}, res.Errors.Messages())
}

func TestCheckRejectsAnonymousBesideNamed(t *testing.T) {
	s, err := LoadSchema(context.Background(), loadPets(t))
	require.NoError(t, err)

	res := Check(context.Background(), s, source.New(`query One { pet(id: 1) { name } } { pets { id } }`))
	assert.False(t, res.Valid)
	assert.Equal(t, []string{"This anonymous operation must be the only defined operation."}, res.Errors.Messages())
	assert.Equal(t, []Operation{{Name: "One", Type: "query"}, {Name: "", Type: "query"}}, res.Operations)
}

func TestCheckReportsSyntaxError(t *testing.T) {
	s, err := LoadSchema(context.Background(), loadPets(t))
	require.NoError(t, err)

	res := Check(context.Background(), s, source.New("{ pets { id }"))
	assert.False(t, res.Valid)
	assert.Nil(t, res.Document)
	require.Len(t, res.Errors, 1)
	assert.True(t, res.Errors[0].IsSyntax())
	assert.Equal(t, "Expected Name, found <EOF>", res.Errors[0].Message)
}

func TestValidateWithRules(t *testing.T) {
	ctx := context.Background()
	s, err := LoadSchema(ctx, loadPets(t))
	require.NoError(t, err)
	doc, err := ParseQuery(ctx, "q", `{ pets { id } __schema { queryType { name } } }`)
	require.NoError(t, err)

	assert.Empty(t, Validate(ctx, s, doc))
	errs := Validate(ctx, s, doc, WithRules(rules.DisableIntrospection()))
	assert.Equal(t, []string{"GraphQL introspection is not allowed, but the query contained __schema or __type"}, errs.Messages())
}

func TestValidateMaxErrors(t *testing.T) {
	ctx := context.Background()
	s, err := LoadSchema(ctx, loadPets(t))
	require.NoError(t, err)
	doc, err := ParseQuery(ctx, "q", `{ a b c d }`)
	require.NoError(t, err)

	assert.Len(t, Validate(ctx, s, doc), 4)
	assert.Len(t, Validate(ctx, s, doc, WithMaxErrors(2)), 3)
}

func TestLoadSchemaFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.graphql"), []byte("type Query { a: A }"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.graphql"), []byte("type A { id: ID }"), 0o644))

	s, err := LoadSchemaFiles(context.Background(), filepath.Join(dir, "*.graphql"))
	require.NoError(t, err)
	assert.Contains(t, s.Types, "A")
	assert.Contains(t, s.Types, "__Schema")

	_, err = LoadSchemaFiles(context.Background(), filepath.Join(dir, "*.gql"))
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, err = LoadSchemaFiles(context.Background())
	assert.Error(t, err)
}

func TestLoadSchemaError(t *testing.T) {
	_, err := LoadSchema(context.Background(), source.New("type Query { a: Missing }"))
	assert.Error(t, err)
}

func TestEventsArePublished(t *testing.T) {
	bus := eventbus.New()
	eventbus.Use(bus)
	t.Cleanup(func() { eventbus.Use(nil) })

	var seen []string
	eventbus.On(bus, func(_ context.Context, e events.SchemaLoaded) {
		seen = append(seen, "schema")
		assert.Equal(t, []string{"pets.graphql"}, e.Sources)
		assert.NoError(t, e.Err)
	})
	eventbus.On(bus, func(_ context.Context, e events.ParseStart) {
		seen = append(seen, "parse:"+e.Source)
	})
	eventbus.On(bus, func(_ context.Context, e events.ParseFinish) {
		seen = append(seen, "parsed")
		assert.Equal(t, 1, e.Definitions)
	})
	eventbus.On(bus, func(_ context.Context, e events.ValidateStart) {
		seen = append(seen, "validate")
		assert.Equal(t, []string{"Q"}, e.Operations)
	})
	eventbus.On(bus, func(_ context.Context, e events.ValidateFinish) {
		seen = append(seen, "validated")
		assert.Len(t, e.Errors, 1)
	})

	ctx := context.Background()
	s, err := LoadSchema(ctx, loadPets(t))
	require.NoError(t, err)
	Check(ctx, s, source.New(`query Q { unknown }`, source.WithName("q.graphql")))

	assert.Equal(t, []string{"schema", "parse:q.graphql", "parsed", "validate", "validated"}, seen)
}
