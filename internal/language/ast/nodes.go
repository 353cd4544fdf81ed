package ast

func (*Name) Kind() Kind                      { return KindName }
func (*Document) Kind() Kind                  { return KindDocument }
func (*OperationDefinition) Kind() Kind       { return KindOperationDefinition }
func (*VariableDefinition) Kind() Kind        { return KindVariableDefinition }
func (*Variable) Kind() Kind                  { return KindVariable }
func (*SelectionSet) Kind() Kind              { return KindSelectionSet }
func (*Field) Kind() Kind                     { return KindField }
func (*Argument) Kind() Kind                  { return KindArgument }
func (*FragmentSpread) Kind() Kind            { return KindFragmentSpread }
func (*InlineFragment) Kind() Kind            { return KindInlineFragment }
func (*FragmentDefinition) Kind() Kind        { return KindFragmentDefinition }
func (*IntValue) Kind() Kind                  { return KindIntValue }
func (*FloatValue) Kind() Kind                { return KindFloatValue }
func (*StringValue) Kind() Kind               { return KindStringValue }
func (*BooleanValue) Kind() Kind              { return KindBooleanValue }
func (*EnumValue) Kind() Kind                 { return KindEnumValue }
func (*NullValue) Kind() Kind                 { return KindNullValue }
func (*ListValue) Kind() Kind                 { return KindListValue }
func (*ObjectValue) Kind() Kind               { return KindObjectValue }
func (*ObjectField) Kind() Kind               { return KindObjectField }
func (*Directive) Kind() Kind                 { return KindDirective }
func (*NamedType) Kind() Kind                 { return KindNamedType }
func (*ListType) Kind() Kind                  { return KindListType }
func (*NonNullType) Kind() Kind               { return KindNonNullType }
func (*SchemaDefinition) Kind() Kind          { return KindSchemaDefinition }
func (*OperationTypeDefinition) Kind() Kind   { return KindOperationTypeDefinition }
func (*ScalarTypeDefinition) Kind() Kind      { return KindScalarTypeDefinition }
func (*ObjectTypeDefinition) Kind() Kind      { return KindObjectTypeDefinition }
func (*FieldDefinition) Kind() Kind           { return KindFieldDefinition }
func (*InputValueDefinition) Kind() Kind      { return KindInputValueDefinition }
func (*InterfaceTypeDefinition) Kind() Kind   { return KindInterfaceTypeDefinition }
func (*UnionTypeDefinition) Kind() Kind       { return KindUnionTypeDefinition }
func (*EnumTypeDefinition) Kind() Kind        { return KindEnumTypeDefinition }
func (*EnumValueDefinition) Kind() Kind       { return KindEnumValueDefinition }
func (*InputObjectTypeDefinition) Kind() Kind { return KindInputObjectTypeDefinition }
func (*ScalarTypeExtension) Kind() Kind       { return KindScalarTypeExtension }
func (*ObjectTypeExtension) Kind() Kind       { return KindObjectTypeExtension }
func (*InterfaceTypeExtension) Kind() Kind    { return KindInterfaceTypeExtension }
func (*UnionTypeExtension) Kind() Kind        { return KindUnionTypeExtension }
func (*EnumTypeExtension) Kind() Kind         { return KindEnumTypeExtension }
func (*InputObjectTypeExtension) Kind() Kind  { return KindInputObjectTypeExtension }
func (*DirectiveDefinition) Kind() Kind       { return KindDirectiveDefinition }

func (n *Name) Location() *Location                      { return n.Loc }
func (n *Document) Location() *Location                  { return n.Loc }
func (n *OperationDefinition) Location() *Location       { return n.Loc }
func (n *VariableDefinition) Location() *Location        { return n.Loc }
func (n *Variable) Location() *Location                  { return n.Loc }
func (n *SelectionSet) Location() *Location              { return n.Loc }
func (n *Field) Location() *Location                     { return n.Loc }
func (n *Argument) Location() *Location                  { return n.Loc }
func (n *FragmentSpread) Location() *Location            { return n.Loc }
func (n *InlineFragment) Location() *Location            { return n.Loc }
func (n *FragmentDefinition) Location() *Location        { return n.Loc }
func (n *IntValue) Location() *Location                  { return n.Loc }
func (n *FloatValue) Location() *Location                { return n.Loc }
func (n *StringValue) Location() *Location               { return n.Loc }
func (n *BooleanValue) Location() *Location              { return n.Loc }
func (n *EnumValue) Location() *Location                 { return n.Loc }
func (n *NullValue) Location() *Location                 { return n.Loc }
func (n *ListValue) Location() *Location                 { return n.Loc }
func (n *ObjectValue) Location() *Location               { return n.Loc }
func (n *ObjectField) Location() *Location               { return n.Loc }
func (n *Directive) Location() *Location                 { return n.Loc }
func (n *NamedType) Location() *Location                 { return n.Loc }
func (n *ListType) Location() *Location                  { return n.Loc }
func (n *NonNullType) Location() *Location               { return n.Loc }
func (n *SchemaDefinition) Location() *Location          { return n.Loc }
func (n *OperationTypeDefinition) Location() *Location   { return n.Loc }
func (n *ScalarTypeDefinition) Location() *Location      { return n.Loc }
func (n *ObjectTypeDefinition) Location() *Location      { return n.Loc }
func (n *FieldDefinition) Location() *Location           { return n.Loc }
func (n *InputValueDefinition) Location() *Location      { return n.Loc }
func (n *InterfaceTypeDefinition) Location() *Location   { return n.Loc }
func (n *UnionTypeDefinition) Location() *Location       { return n.Loc }
func (n *EnumTypeDefinition) Location() *Location        { return n.Loc }
func (n *EnumValueDefinition) Location() *Location       { return n.Loc }
func (n *InputObjectTypeDefinition) Location() *Location { return n.Loc }
func (n *ScalarTypeExtension) Location() *Location       { return n.Loc }
func (n *ObjectTypeExtension) Location() *Location       { return n.Loc }
func (n *InterfaceTypeExtension) Location() *Location    { return n.Loc }
func (n *UnionTypeExtension) Location() *Location        { return n.Loc }
func (n *EnumTypeExtension) Location() *Location         { return n.Loc }
func (n *InputObjectTypeExtension) Location() *Location  { return n.Loc }
func (n *DirectiveDefinition) Location() *Location       { return n.Loc }

func (*OperationDefinition) isDefinition()       {}
func (*FragmentDefinition) isDefinition()        {}
func (*SchemaDefinition) isDefinition()          {}
func (*DirectiveDefinition) isDefinition()       {}
func (*ScalarTypeDefinition) isDefinition()      {}
func (*ObjectTypeDefinition) isDefinition()      {}
func (*InterfaceTypeDefinition) isDefinition()   {}
func (*UnionTypeDefinition) isDefinition()       {}
func (*EnumTypeDefinition) isDefinition()        {}
func (*InputObjectTypeDefinition) isDefinition() {}
func (*ScalarTypeExtension) isDefinition()       {}
func (*ObjectTypeExtension) isDefinition()       {}
func (*InterfaceTypeExtension) isDefinition()    {}
func (*UnionTypeExtension) isDefinition()        {}
func (*EnumTypeExtension) isDefinition()         {}
func (*InputObjectTypeExtension) isDefinition()  {}

func (*OperationDefinition) isExecutableDefinition() {}
func (*FragmentDefinition) isExecutableDefinition()  {}

func (*SchemaDefinition) isTypeSystemDefinition()          {}
func (*DirectiveDefinition) isTypeSystemDefinition()       {}
func (*ScalarTypeDefinition) isTypeSystemDefinition()      {}
func (*ObjectTypeDefinition) isTypeSystemDefinition()      {}
func (*InterfaceTypeDefinition) isTypeSystemDefinition()   {}
func (*UnionTypeDefinition) isTypeSystemDefinition()       {}
func (*EnumTypeDefinition) isTypeSystemDefinition()        {}
func (*InputObjectTypeDefinition) isTypeSystemDefinition() {}
func (*ScalarTypeExtension) isTypeSystemDefinition()       {}
func (*ObjectTypeExtension) isTypeSystemDefinition()       {}
func (*InterfaceTypeExtension) isTypeSystemDefinition()    {}
func (*UnionTypeExtension) isTypeSystemDefinition()        {}
func (*EnumTypeExtension) isTypeSystemDefinition()         {}
func (*InputObjectTypeExtension) isTypeSystemDefinition()  {}

func (*ScalarTypeDefinition) isTypeDefinition()      {}
func (*ObjectTypeDefinition) isTypeDefinition()      {}
func (*InterfaceTypeDefinition) isTypeDefinition()   {}
func (*UnionTypeDefinition) isTypeDefinition()       {}
func (*EnumTypeDefinition) isTypeDefinition()        {}
func (*InputObjectTypeDefinition) isTypeDefinition() {}

func (*ScalarTypeExtension) isTypeExtension()      {}
func (*ObjectTypeExtension) isTypeExtension()      {}
func (*InterfaceTypeExtension) isTypeExtension()   {}
func (*UnionTypeExtension) isTypeExtension()       {}
func (*EnumTypeExtension) isTypeExtension()        {}
func (*InputObjectTypeExtension) isTypeExtension() {}

func (n *ScalarTypeDefinition) TypeName() string      { return n.Name.Value }
func (n *ObjectTypeDefinition) TypeName() string      { return n.Name.Value }
func (n *InterfaceTypeDefinition) TypeName() string   { return n.Name.Value }
func (n *UnionTypeDefinition) TypeName() string       { return n.Name.Value }
func (n *EnumTypeDefinition) TypeName() string        { return n.Name.Value }
func (n *InputObjectTypeDefinition) TypeName() string { return n.Name.Value }
func (n *ScalarTypeExtension) TypeName() string       { return n.Name.Value }
func (n *ObjectTypeExtension) TypeName() string       { return n.Name.Value }
func (n *InterfaceTypeExtension) TypeName() string    { return n.Name.Value }
func (n *UnionTypeExtension) TypeName() string        { return n.Name.Value }
func (n *EnumTypeExtension) TypeName() string         { return n.Name.Value }
func (n *InputObjectTypeExtension) TypeName() string  { return n.Name.Value }

func (*Field) isSelection()          {}
func (*FragmentSpread) isSelection() {}
func (*InlineFragment) isSelection() {}

func (*Variable) isValue()     {}
func (*IntValue) isValue()     {}
func (*FloatValue) isValue()   {}
func (*StringValue) isValue()  {}
func (*BooleanValue) isValue() {}
func (*EnumValue) isValue()    {}
func (*NullValue) isValue()    {}
func (*ListValue) isValue()    {}
func (*ObjectValue) isValue()  {}

func (*NamedType) isType()   {}
func (*ListType) isType()    {}
func (*NonNullType) isType() {}
