package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqualFoldedLiterals(t *testing.T) {
	assert.True(t, Equal(
		NewJoin(NewLiteral("a"), NewLiteral("b")),
		NewLiteral("a/b"),
	))
}

func TestEqualDistinguishesVariants(t *testing.T) {
	assert.False(t, Equal(Literal("root"), Param("root")))
	assert.False(t, Equal(Param("a"), Param("b")))
	assert.False(t, Equal(
		NewJoin(Param("a"), Literal("x")),
		NewJoin(Param("a"), Literal("y")),
	))
}

func TestEqualTemplates(t *testing.T) {
	a := MustTemplate(Text("f_"), Interp{Name: "i", Spec: "02d"})
	b := MustTemplate(Text("f"), Text("_"), Interp{Name: "i", Spec: "02d"})
	c := MustTemplate(Text("f_"), Interp{Name: "i", Spec: "03d"})

	// Adjacent text merging makes a and b structurally identical.
	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))
}

func TestEqualWithSuffix(t *testing.T) {
	base := NewJoin(Param("r"), Literal("f.txt"))

	assert.True(t, Equal(NewWithSuffix(base, ".a"), NewWithSuffix(base, ".a")))
	assert.False(t, Equal(NewWithSuffix(base, ".a"), NewWithSuffix(base, ".b")))
}

func TestEqualNil(t *testing.T) {
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(Literal("a"), nil))
	assert.False(t, Equal(nil, Literal("a")))
}
