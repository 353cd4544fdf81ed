package ast

import "strconv"

// Kind identifies which grammar production a Node instantiates. The set is
// closed: every Node implementation in this package reports exactly one of
// these.
type Kind int

const (
	KindName Kind = iota

	KindDocument
	KindOperationDefinition
	KindVariableDefinition
	KindVariable
	KindSelectionSet
	KindField
	KindArgument

	KindFragmentSpread
	KindInlineFragment
	KindFragmentDefinition

	KindIntValue
	KindFloatValue
	KindStringValue
	KindBooleanValue
	KindEnumValue
	KindNullValue
	KindListValue
	KindObjectValue
	KindObjectField

	KindDirective

	KindNamedType
	KindListType
	KindNonNullType

	KindSchemaDefinition
	KindOperationTypeDefinition

	KindScalarTypeDefinition
	KindObjectTypeDefinition
	KindFieldDefinition
	KindInputValueDefinition
	KindInterfaceTypeDefinition
	KindUnionTypeDefinition
	KindEnumTypeDefinition
	KindEnumValueDefinition
	KindInputObjectTypeDefinition

	KindScalarTypeExtension
	KindObjectTypeExtension
	KindInterfaceTypeExtension
	KindUnionTypeExtension
	KindEnumTypeExtension
	KindInputObjectTypeExtension

	KindDirectiveDefinition

	numKinds
)

var kindNames = [numKinds]string{
	KindName:                      "Name",
	KindDocument:                  "Document",
	KindOperationDefinition:       "OperationDefinition",
	KindVariableDefinition:        "VariableDefinition",
	KindVariable:                  "Variable",
	KindSelectionSet:              "SelectionSet",
	KindField:                     "Field",
	KindArgument:                  "Argument",
	KindFragmentSpread:            "FragmentSpread",
	KindInlineFragment:            "InlineFragment",
	KindFragmentDefinition:        "FragmentDefinition",
	KindIntValue:                  "IntValue",
	KindFloatValue:                "FloatValue",
	KindStringValue:               "StringValue",
	KindBooleanValue:              "BooleanValue",
	KindEnumValue:                 "EnumValue",
	KindNullValue:                 "NullValue",
	KindListValue:                 "ListValue",
	KindObjectValue:               "ObjectValue",
	KindObjectField:               "ObjectField",
	KindDirective:                 "Directive",
	KindNamedType:                 "NamedType",
	KindListType:                  "ListType",
	KindNonNullType:               "NonNullType",
	KindSchemaDefinition:          "SchemaDefinition",
	KindOperationTypeDefinition:   "OperationTypeDefinition",
	KindScalarTypeDefinition:      "ScalarTypeDefinition",
	KindObjectTypeDefinition:      "ObjectTypeDefinition",
	KindFieldDefinition:           "FieldDefinition",
	KindInputValueDefinition:      "InputValueDefinition",
	KindInterfaceTypeDefinition:   "InterfaceTypeDefinition",
	KindUnionTypeDefinition:       "UnionTypeDefinition",
	KindEnumTypeDefinition:        "EnumTypeDefinition",
	KindEnumValueDefinition:       "EnumValueDefinition",
	KindInputObjectTypeDefinition: "InputObjectTypeDefinition",
	KindScalarTypeExtension:       "ScalarTypeExtension",
	KindObjectTypeExtension:       "ObjectTypeExtension",
	KindInterfaceTypeExtension:    "InterfaceTypeExtension",
	KindUnionTypeExtension:        "UnionTypeExtension",
	KindEnumTypeExtension:         "EnumTypeExtension",
	KindInputObjectTypeExtension:  "InputObjectTypeExtension",
	KindDirectiveDefinition:       "DirectiveDefinition",
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Kinds returns every node kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, numKinds)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// Operation is the type of an operation definition.
type Operation string

const (
	Query        Operation = "query"
	Mutation     Operation = "mutation"
	Subscription Operation = "subscription"
)

// DirectiveLocation names a place in a document where a directive may
// appear.
type DirectiveLocation string

const (
	LocationQuery              DirectiveLocation = "QUERY"
	LocationMutation           DirectiveLocation = "MUTATION"
	LocationSubscription       DirectiveLocation = "SUBSCRIPTION"
	LocationField              DirectiveLocation = "FIELD"
	LocationFragmentDefinition DirectiveLocation = "FRAGMENT_DEFINITION"
	LocationFragmentSpread     DirectiveLocation = "FRAGMENT_SPREAD"
	LocationInlineFragment     DirectiveLocation = "INLINE_FRAGMENT"
	LocationVariableDefinition DirectiveLocation = "VARIABLE_DEFINITION"

	LocationSchema               DirectiveLocation = "SCHEMA"
	LocationScalar               DirectiveLocation = "SCALAR"
	LocationObject               DirectiveLocation = "OBJECT"
	LocationFieldDefinition      DirectiveLocation = "FIELD_DEFINITION"
	LocationArgumentDefinition   DirectiveLocation = "ARGUMENT_DEFINITION"
	LocationInterface            DirectiveLocation = "INTERFACE"
	LocationUnion                DirectiveLocation = "UNION"
	LocationEnum                 DirectiveLocation = "ENUM"
	LocationEnumValue            DirectiveLocation = "ENUM_VALUE"
	LocationInputObject          DirectiveLocation = "INPUT_OBJECT"
	LocationInputFieldDefinition DirectiveLocation = "INPUT_FIELD_DEFINITION"
)

var directiveLocations = map[DirectiveLocation]bool{
	LocationQuery: true, LocationMutation: true, LocationSubscription: true,
	LocationField: true, LocationFragmentDefinition: true, LocationFragmentSpread: true,
	LocationInlineFragment: true, LocationVariableDefinition: true,
	LocationSchema: true, LocationScalar: true, LocationObject: true,
	LocationFieldDefinition: true, LocationArgumentDefinition: true,
	LocationInterface: true, LocationUnion: true, LocationEnum: true,
	LocationEnumValue: true, LocationInputObject: true, LocationInputFieldDefinition: true,
}

// IsDirectiveLocation reports whether name is a known directive location.
func IsDirectiveLocation(name string) bool {
	return directiveLocations[DirectiveLocation(name)]
}
