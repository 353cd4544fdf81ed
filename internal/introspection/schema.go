// Package introspection defines the introspection types and meta fields
// every GraphQL schema carries, and describes a schema in the shape of an
// introspection query result.
package introspection

import "github.com/hanpama/gqlfront/internal/schema"

// Extend returns a copy of the schema with the introspection types added.
// The original schema is not modified.
func Extend(original *schema.Schema) *schema.Schema {
	extended := schema.NewSchema(original.Description).
		SetQueryType(original.QueryType).
		SetMutationType(original.MutationType).
		SetSubscriptionType(original.SubscriptionType)
	for name, typ := range original.Types {
		extended.Types[name] = typ
	}
	for name, d := range original.Directives {
		extended.Directives[name] = d
	}
	addIntrospectionTypes(extended)
	return extended.Finish()
}

// TypenameField is the __typename meta field, available on every
// composite type.
var TypenameField = schema.NewField("__typename", "The name of the current Object type at runtime.",
	schema.NonNullType(schema.NamedType("String")))

// SchemaField is the __schema meta field of the query root.
var SchemaField = schema.NewField("__schema", "Access the current type schema of this server.",
	schema.NonNullType(schema.NamedType("__Schema")))

// TypeField is the __type meta field of the query root.
var TypeField = schema.NewField("__type", "Request the type information of a single type.",
	schema.NamedType("__Type")).
	AddArgument(schema.NewInputValue("name", "The name of the type to look up.",
		schema.NonNullType(schema.NamedType("String"))))

// MetaField returns the meta field definition for name on parent, or nil
// when name is not a meta field there. __schema and __type exist only on
// the query root type.
func MetaField(queryRoot, parent *schema.Type, name string) *schema.Field {
	switch name {
	case TypenameField.Name:
		if parent.IsComposite() {
			return TypenameField
		}
	case SchemaField.Name:
		if parent == queryRoot {
			return SchemaField
		}
	case TypeField.Name:
		if parent == queryRoot {
			return TypeField
		}
	}
	return nil
}

// IsIntrospectionType reports whether name is one of the introspection
// types added by Extend.
func IsIntrospectionType(name string) bool {
	for _, n := range typeNames {
		if n == name {
			return true
		}
	}
	return false
}

var typeNames = []string{
	"__Schema", "__Type", "__Field", "__InputValue",
	"__EnumValue", "__Directive", "__TypeKind", "__DirectiveLocation",
}

// addIntrospectionTypes adds the introspection types to the schema
func addIntrospectionTypes(sch *schema.Schema) {
	for _, name := range typeNames {
		sch.AddType(introspectionSchema.Types[name])
	}
}

var introspectionSchema = mustBuild(introspectionSDL)

func mustBuild(sdl string) *schema.Schema {
	s, err := schema.BuildFromSDL("introspection.graphql", sdl)
	if err != nil {
		panic(err)
	}
	return s
}

const introspectionSDL = `
"""
A GraphQL Schema defines the capabilities of a GraphQL server. It exposes all available types and directives on the server, as well as the entry points for query, mutation, and subscription operations.
"""
type __Schema {
  description: String
  "A list of all types supported by this server."
  types: [__Type!]!
  "The type that query operations will be rooted at."
  queryType: __Type!
  "If this server supports mutation, the type that mutation operations will be rooted at."
  mutationType: __Type
  "If this server support subscription, the type that subscription operations will be rooted at."
  subscriptionType: __Type
  "A list of all directives supported by this server."
  directives: [__Directive!]!
}

"""
The fundamental unit of any GraphQL Schema is the type. There are many kinds of types in GraphQL as represented by the ` + "`__TypeKind`" + ` enum.
"""
type __Type {
  kind: __TypeKind!
  name: String
  description: String
  specifiedByURL: String
  fields(includeDeprecated: Boolean = false): [__Field!]
  interfaces: [__Type!]
  possibleTypes: [__Type!]
  enumValues(includeDeprecated: Boolean = false): [__EnumValue!]
  inputFields(includeDeprecated: Boolean = false): [__InputValue!]
  ofType: __Type
  isOneOf: Boolean
}

"An enum describing what kind of type a given ` + "`__Type`" + ` is."
enum __TypeKind {
  SCALAR
  OBJECT
  INTERFACE
  UNION
  ENUM
  INPUT_OBJECT
  LIST
  NON_NULL
}

"Object and Interface types are described by a list of Fields, each of which has a name, potentially a list of arguments, and a return type."
type __Field {
  name: String!
  description: String
  args(includeDeprecated: Boolean = false): [__InputValue!]!
  type: __Type!
  isDeprecated: Boolean!
  deprecationReason: String
}

"Arguments provided to Fields or Directives and the input fields of an InputObject are represented as Input Values which describe their type and optionally a default value."
type __InputValue {
  name: String!
  description: String
  type: __Type!
  "A GraphQL-formatted string representing the default value for this input value."
  defaultValue: String
  isDeprecated: Boolean!
  deprecationReason: String
}

"One possible value for a given Enum. Enum values are unique values, not a placeholder for a string or numeric value."
type __EnumValue {
  name: String!
  description: String
  isDeprecated: Boolean!
  deprecationReason: String
}

"A Directive provides a way to describe alternate runtime execution and type validation behavior in a GraphQL document."
type __Directive {
  name: String!
  description: String
  isRepeatable: Boolean!
  locations: [__DirectiveLocation!]!
  args(includeDeprecated: Boolean = false): [__InputValue!]!
}

"A Directive can be adjacent to many parts of the GraphQL language, a __DirectiveLocation describes one such possible adjacencies."
enum __DirectiveLocation {
  QUERY
  MUTATION
  SUBSCRIPTION
  FIELD
  FRAGMENT_DEFINITION
  FRAGMENT_SPREAD
  INLINE_FRAGMENT
  VARIABLE_DEFINITION
  SCHEMA
  SCALAR
  OBJECT
  FIELD_DEFINITION
  ARGUMENT_DEFINITION
  INTERFACE
  UNION
  ENUM
  ENUM_VALUE
  INPUT_OBJECT
  INPUT_FIELD_DEFINITION
}
`
