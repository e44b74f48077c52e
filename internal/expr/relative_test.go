package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelativePathResolve(t *testing.T) {
	cfg := NewRelativePath(
		MustParam("root"),
		NewJoin(NewLiteral("config"), NewLiteral("settings.yaml")),
	)

	resolved, err := cfg.Resolve(Bindings{"root": NewString("/project")})
	require.NoError(t, err)
	assert.Equal(t, "/project/config/settings.yaml", resolved)
}

func TestRebase(t *testing.T) {
	cfg := NewRelativePath(
		MustParam("root"),
		NewJoin(NewLiteral("config"), NewLiteral("settings.yaml")),
	)

	rebased := cfg.Rebase(NewLiteral("/tmp/test"))

	resolved, err := rebased.Resolve(nil)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/test/config/settings.yaml", resolved)
}

func TestRebaseLeavesOriginalUnmodified(t *testing.T) {
	cfg := NewRelativePath(
		MustParam("root"),
		NewJoin(NewLiteral("config"), NewLiteral("settings.yaml")),
	)

	_ = cfg.Rebase(NewLiteral("/tmp/test"))

	// The original still requires "root".
	assert.Equal(t, []string{"root"}, cfg.RequiredParams().Names())
	_, err := cfg.Resolve(nil)
	require.Error(t, err)
	assert.True(t, IsMissingParam(err))
}

func TestRebaseDoesNotFoldAcrossBoundary(t *testing.T) {
	cfg := NewRelativePath(MustParam("root"), NewLiteral("config"))
	rebased := cfg.Rebase(NewLiteral("/tmp"))

	// Base and relative stay independent sub-trees even when they could
	// combine into one literal.
	assert.Equal(t, Literal("/tmp"), rebased.Base)
	assert.Equal(t, Literal("config"), rebased.Relative)
}

func TestRelativePathRequiredParamsUnion(t *testing.T) {
	p := NewRelativePath(
		MustParam("root"),
		NewJoin(MustParam("dataset"), NewLiteral("x")),
	)

	assert.Equal(t, []string{"dataset", "root"}, p.RequiredParams().Names())
}

func TestRelativePathMissingReportedAcrossBoundary(t *testing.T) {
	p := NewRelativePath(MustParam("root"), MustParam("dataset"))

	_, err := p.Resolve(Bindings{})
	require.Error(t, err)

	var ee *Error
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, []string{"dataset", "root"}, ee.Params)
}

func TestRelativePathExpr(t *testing.T) {
	p := NewRelativePath(NewLiteral("/a"), NewLiteral("b"))

	// The full expression folds normally; rebasing is what must not fold.
	assert.Equal(t, Literal("/a/b"), p.Expr())
}
