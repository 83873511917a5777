package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/headwind-cms/headwind/pkg/domain/types"
)

func TestFieldKindIsValid(t *testing.T) {
	for _, kind := range types.AllFieldKinds() {
		gt.True(t, kind.IsValid())
		gt.NoError(t, kind.Validate())
	}

	gt.False(t, types.FieldKind("geo").IsValid())
	gt.Error(t, types.FieldKind("geo").Validate())
	gt.False(t, types.FieldKind("").IsValid())

	// Kind names are case-sensitive
	gt.False(t, types.FieldKind("Number").IsValid())
}

func TestAllFieldKinds(t *testing.T) {
	kinds := types.AllFieldKinds()
	gt.Value(t, len(kinds)).Equal(8)

	seen := map[types.FieldKind]bool{}
	for _, kind := range kinds {
		gt.False(t, seen[kind])
		seen[kind] = true
	}
	gt.True(t, seen[types.FieldKindNumber])
	gt.True(t, seen[types.FieldKindText])
	gt.True(t, seen[types.FieldKindDate])
	gt.True(t, seen[types.FieldKindBoolean])
	gt.True(t, seen[types.FieldKindRelation])
	gt.True(t, seen[types.FieldKindMedia])
	gt.True(t, seen[types.FieldKindEnum])
	gt.True(t, seen[types.FieldKindPrice])
}
