package validator

import "github.com/hanpama/gqlfront/internal/schema"

// IsTypeSubTypeOf reports whether a value of type sub can be used where
// super is expected.
func IsTypeSubTypeOf(s Schema, sub, super *schema.TypeRef) bool {
	if sub.Equal(super) {
		return true
	}
	if super.IsNonNull() {
		if sub.IsNonNull() {
			return IsTypeSubTypeOf(s, sub.OfType, super.OfType)
		}
		return false
	}
	if sub.IsNonNull() {
		return IsTypeSubTypeOf(s, sub.OfType, super)
	}
	if super.Kind == schema.TypeRefKindList {
		if sub.Kind == schema.TypeRefKindList {
			return IsTypeSubTypeOf(s, sub.OfType, super.OfType)
		}
		return false
	}
	if sub.Kind == schema.TypeRefKindList {
		return false
	}
	superType, subType := s.Type(super.Named), s.Type(sub.Named)
	if superType == nil || subType == nil {
		return false
	}
	return superType.IsAbstract() &&
		(subType.Kind == schema.TypeKindObject || subType.Kind == schema.TypeKindInterface) &&
		s.IsPossibleType(superType, subType)
}

// DoTypesOverlap reports whether some object type could be both a and b.
func DoTypesOverlap(s Schema, a, b *schema.Type) bool {
	if a == b || a.Name == b.Name {
		return true
	}
	if a.IsAbstract() {
		if b.IsAbstract() {
			for _, t := range s.PossibleTypes(a) {
				if s.IsPossibleType(b, t) {
					return true
				}
			}
			return false
		}
		return s.IsPossibleType(a, b)
	}
	if b.IsAbstract() {
		return s.IsPossibleType(b, a)
	}
	return false
}
