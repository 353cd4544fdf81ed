package rules

import (
	"fmt"
	"strings"

	"github.com/hanpama/gqlfront/internal/language/ast"
	"github.com/hanpama/gqlfront/internal/schema"
	"github.com/hanpama/gqlfront/internal/validator"
)

// OverlappingFieldsCanBeMerged reports selections that share a response
// name but would produce different values: different fields, different
// arguments or incompatible types. Fields whose parents are distinct
// object types may differ in name and arguments, since only one of them
// can apply at runtime.
var OverlappingFieldsCanBeMerged = validator.NewRule("OverlappingFieldsCanBeMerged", func(ctx *validator.Context) validator.Visitor {
	o := &overlap{
		ctx:      ctx,
		s:        ctx.Schema(),
		cache:    map[*ast.SelectionSet]*fieldsAndFragments{},
		compared: pairSet{},
	}
	return validator.Funcs{EnterFunc: func(n ast.Node) ast.Action {
		set, ok := n.(*ast.SelectionSet)
		if !ok {
			return ast.Continue
		}
		for _, c := range o.findConflictsWithin(ctx.ParentType(), set) {
			nodes := make([]ast.Node, 0, len(c.fields1)+len(c.fields2))
			for _, f := range c.fields1 {
				nodes = append(nodes, f)
			}
			for _, f := range c.fields2 {
				nodes = append(nodes, f)
			}
			ctx.Report(fmt.Sprintf("Fields %q conflict because %s. Use different aliases on the fields to fetch both if this was intentional.",
				c.responseName, c.reason), nodes...)
		}
		return ast.Continue
	}}
})

type conflictReason struct {
	message string
	sub     []*conflict
}

func (r conflictReason) String() string {
	if len(r.sub) == 0 {
		return r.message
	}
	parts := make([]string, len(r.sub))
	for i, c := range r.sub {
		parts[i] = fmt.Sprintf("subfields %q conflict because %s", c.responseName, c.reason)
	}
	return strings.Join(parts, " and ")
}

type conflict struct {
	responseName string
	reason       conflictReason
	fields1      []*ast.Field
	fields2      []*ast.Field
}

type fieldEntry struct {
	parent *schema.Type
	node   *ast.Field
	def    *schema.Field
}

// fieldMap groups fields by response name, keeping first-seen order.
type fieldMap struct {
	names  []string
	fields map[string][]fieldEntry
}

func (m *fieldMap) add(name string, e fieldEntry) {
	if _, ok := m.fields[name]; !ok {
		m.names = append(m.names, name)
	}
	m.fields[name] = append(m.fields[name], e)
}

type fieldsAndFragments struct {
	fields    *fieldMap
	fragments []string
}

// pairSet records fragment pairs already compared, and whether the
// comparison assumed mutually exclusive parents.
type pairSet map[[2]string]bool

func (p pairSet) has(a, b string, mutuallyExclusive bool) bool {
	exclusive, ok := p[[2]string{a, b}]
	if !ok {
		return false
	}
	if !mutuallyExclusive {
		return !exclusive
	}
	return true
}

func (p pairSet) add(a, b string, mutuallyExclusive bool) {
	p[[2]string{a, b}] = mutuallyExclusive
	p[[2]string{b, a}] = mutuallyExclusive
}

type overlap struct {
	ctx      *validator.Context
	s        validator.Schema
	cache    map[*ast.SelectionSet]*fieldsAndFragments
	compared pairSet
}

func (o *overlap) findConflictsWithin(parent *schema.Type, set *ast.SelectionSet) []*conflict {
	var conflicts []*conflict
	ff := o.fieldsAndFragmentNames(parent, set)
	o.collectWithin(&conflicts, ff.fields)
	for i, name := range ff.fragments {
		o.collectBetweenFieldsAndFragment(&conflicts, map[string]bool{}, false, ff.fields, name)
		for _, other := range ff.fragments[i+1:] {
			o.collectBetweenFragments(&conflicts, false, name, other)
		}
	}
	return conflicts
}

func (o *overlap) collectBetweenFieldsAndFragment(conflicts *[]*conflict, compared map[string]bool, exclusive bool, fields *fieldMap, fragName string) {
	if compared[fragName] {
		return
	}
	compared[fragName] = true
	frag := o.ctx.Fragment(fragName)
	if frag == nil {
		return
	}
	ff := o.referencedFieldsAndFragmentNames(frag)
	if ff.fields == fields {
		return
	}
	o.collectBetween(conflicts, exclusive, fields, ff.fields)
	for _, name := range ff.fragments {
		o.collectBetweenFieldsAndFragment(conflicts, compared, exclusive, fields, name)
	}
}

func (o *overlap) collectBetweenFragments(conflicts *[]*conflict, exclusive bool, name1, name2 string) {
	if name1 == name2 || o.compared.has(name1, name2, exclusive) {
		return
	}
	o.compared.add(name1, name2, exclusive)
	frag1, frag2 := o.ctx.Fragment(name1), o.ctx.Fragment(name2)
	if frag1 == nil || frag2 == nil {
		return
	}
	ff1 := o.referencedFieldsAndFragmentNames(frag1)
	ff2 := o.referencedFieldsAndFragmentNames(frag2)
	o.collectBetween(conflicts, exclusive, ff1.fields, ff2.fields)
	for _, name := range ff2.fragments {
		o.collectBetweenFragments(conflicts, exclusive, name1, name)
	}
	for _, name := range ff1.fragments {
		o.collectBetweenFragments(conflicts, exclusive, name, name2)
	}
}

func (o *overlap) findConflictsBetweenSubSelections(exclusive bool, parent1 *schema.Type, set1 *ast.SelectionSet, parent2 *schema.Type, set2 *ast.SelectionSet) []*conflict {
	var conflicts []*conflict
	ff1 := o.fieldsAndFragmentNames(parent1, set1)
	ff2 := o.fieldsAndFragmentNames(parent2, set2)
	o.collectBetween(&conflicts, exclusive, ff1.fields, ff2.fields)

	compared := map[string]bool{}
	for _, name := range ff2.fragments {
		o.collectBetweenFieldsAndFragment(&conflicts, compared, exclusive, ff1.fields, name)
	}
	compared = map[string]bool{}
	for _, name := range ff1.fragments {
		o.collectBetweenFieldsAndFragment(&conflicts, compared, exclusive, ff2.fields, name)
	}
	for _, name1 := range ff1.fragments {
		for _, name2 := range ff2.fragments {
			o.collectBetweenFragments(&conflicts, exclusive, name1, name2)
		}
	}
	return conflicts
}

func (o *overlap) collectWithin(conflicts *[]*conflict, fields *fieldMap) {
	for _, name := range fields.names {
		entries := fields.fields[name]
		for i := range entries {
			for j := i + 1; j < len(entries); j++ {
				if c := o.findConflict(false, name, entries[i], entries[j]); c != nil {
					*conflicts = append(*conflicts, c)
				}
			}
		}
	}
}

func (o *overlap) collectBetween(conflicts *[]*conflict, exclusive bool, fields1, fields2 *fieldMap) {
	for _, name := range fields1.names {
		others, ok := fields2.fields[name]
		if !ok {
			continue
		}
		for _, e1 := range fields1.fields[name] {
			for _, e2 := range others {
				if c := o.findConflict(exclusive, name, e1, e2); c != nil {
					*conflicts = append(*conflicts, c)
				}
			}
		}
	}
}

func (o *overlap) findConflict(parentsExclusive bool, responseName string, f1, f2 fieldEntry) *conflict {
	exclusive := parentsExclusive ||
		(f1.parent != nil && f2.parent != nil && f1.parent.Name != f2.parent.Name &&
			f1.parent.Kind == schema.TypeKindObject && f2.parent.Kind == schema.TypeKindObject)

	simple := func(msg string) *conflict {
		return &conflict{
			responseName: responseName,
			reason:       conflictReason{message: msg},
			fields1:      []*ast.Field{f1.node},
			fields2:      []*ast.Field{f2.node},
		}
	}

	if !exclusive {
		name1, name2 := f1.node.Name.Value, f2.node.Name.Value
		if name1 != name2 {
			return simple(fmt.Sprintf("%s and %s are different fields", name1, name2))
		}
		if !sameArguments(f1.node.Arguments, f2.node.Arguments) {
			return simple("they have differing arguments")
		}
	}

	var type1, type2 *schema.TypeRef
	if f1.def != nil {
		type1 = f1.def.Type
	}
	if f2.def != nil {
		type2 = f2.def.Type
	}
	if type1 != nil && type2 != nil && o.doTypesConflict(type1, type2) {
		return simple(fmt.Sprintf("they return conflicting types %s and %s", type1.String(), type2.String()))
	}

	set1, set2 := f1.node.SelectionSet, f2.node.SelectionSet
	if set1 == nil || set2 == nil {
		return nil
	}
	subs := o.findConflictsBetweenSubSelections(exclusive, o.ctx.NamedType(type1), set1, o.ctx.NamedType(type2), set2)
	if len(subs) == 0 {
		return nil
	}
	c := &conflict{
		responseName: responseName,
		reason:       conflictReason{sub: subs},
		fields1:      []*ast.Field{f1.node},
		fields2:      []*ast.Field{f2.node},
	}
	for _, sub := range subs {
		c.fields1 = append(c.fields1, sub.fields1...)
		c.fields2 = append(c.fields2, sub.fields2...)
	}
	return c
}

func (o *overlap) doTypesConflict(t1, t2 *schema.TypeRef) bool {
	if t1.Kind == schema.TypeRefKindList {
		if t2.Kind == schema.TypeRefKindList {
			return o.doTypesConflict(t1.OfType, t2.OfType)
		}
		return true
	}
	if t2.Kind == schema.TypeRefKindList {
		return true
	}
	if t1.IsNonNull() {
		if t2.IsNonNull() {
			return o.doTypesConflict(t1.OfType, t2.OfType)
		}
		return true
	}
	if t2.IsNonNull() {
		return true
	}
	n1, n2 := o.s.Type(t1.Named), o.s.Type(t2.Named)
	if (n1 != nil && n1.IsLeaf()) || (n2 != nil && n2.IsLeaf()) {
		return t1.Named != t2.Named
	}
	return false
}

func sameArguments(args1, args2 []*ast.Argument) bool {
	if len(args1) != len(args2) {
		return false
	}
	for _, a1 := range args1 {
		found := false
		for _, a2 := range args2 {
			if a1.Name.Value == a2.Name.Value {
				found = ast.ValueString(a1.Value) == ast.ValueString(a2.Value)
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (o *overlap) fieldsAndFragmentNames(parent *schema.Type, set *ast.SelectionSet) *fieldsAndFragments {
	if ff, ok := o.cache[set]; ok {
		return ff
	}
	ff := &fieldsAndFragments{fields: &fieldMap{fields: map[string][]fieldEntry{}}}
	seen := map[string]bool{}
	o.collectFieldsAndFragmentNames(parent, set, ff, seen)
	o.cache[set] = ff
	return ff
}

func (o *overlap) referencedFieldsAndFragmentNames(frag *ast.FragmentDefinition) *fieldsAndFragments {
	if ff, ok := o.cache[frag.SelectionSet]; ok {
		return ff
	}
	return o.fieldsAndFragmentNames(o.s.Type(frag.TypeCondition.Name.Value), frag.SelectionSet)
}

func (o *overlap) collectFieldsAndFragmentNames(parent *schema.Type, set *ast.SelectionSet, ff *fieldsAndFragments, seen map[string]bool) {
	for _, sel := range set.Selections {
		switch sel := sel.(type) {
		case *ast.Field:
			var def *schema.Field
			if parent != nil && (parent.Kind == schema.TypeKindObject || parent.Kind == schema.TypeKindInterface) {
				def = parent.Field(sel.Name.Value)
			}
			ff.fields.add(sel.ResponseKey(), fieldEntry{parent: parent, node: sel, def: def})
		case *ast.FragmentSpread:
			if !seen[sel.Name.Value] {
				seen[sel.Name.Value] = true
				ff.fragments = append(ff.fragments, sel.Name.Value)
			}
		case *ast.InlineFragment:
			t := parent
			if sel.TypeCondition != nil {
				t = o.s.Type(sel.TypeCondition.Name.Value)
			}
			o.collectFieldsAndFragmentNames(t, sel.SelectionSet, ff, seen)
		}
	}
}
