package emv_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pixkit/pkg/emv"
)

func TestEncodeField(t *testing.T) {
	t.Parallel()

	t.Run("prefixes id and two digit length", func(t *testing.T) {
		t.Parallel()
		for _, n := range []int{0, 1, 9, 10, 98, 99} {
			content := strings.Repeat("x", n)
			got, err := emv.EncodeField(7, content)
			require.NoError(t, err, "length %d", n)
			assert.Equal(t, "07"+twoDigits(n)+content, got)
		}
	})

	t.Run("fails above 99 characters", func(t *testing.T) {
		t.Parallel()
		content := strings.Repeat("x", 100)
		_, err := emv.EncodeField(7, content)
		require.Error(t, err)
		assert.ErrorIs(t, err, emv.ErrContentTooLong)
		assert.Contains(t, err.Error(), "field 07 is 100 characters long")
	})

	t.Run("fails for invalid id", func(t *testing.T) {
		t.Parallel()
		_, err := emv.EncodeField(100, "x")
		assert.ErrorIs(t, err, emv.ErrInvalidID)
	})
}

func TestEncoder_Encode(t *testing.T) {
	t.Parallel()

	t.Run("nests groups", func(t *testing.T) {
		t.Parallel()
		tree := emv.NewTree(emv.OrderByID)
		require.NoError(t, tree.SetLeaf(0, "01"))
		add, err := tree.Group(62)
		require.NoError(t, err)
		tmpl, err := add.Group(50)
		require.NoError(t, err)
		require.NoError(t, tmpl.SetLeaf(0, "BR.GOV.BCB.BRCODE"))
		require.NoError(t, tmpl.SetLeaf(1, "1.0.0"))
		require.NoError(t, add.SetLeaf(5, "***"))

		got, err := tree.Encode()
		require.NoError(t, err)
		assert.Equal(t, "000201"+"62410503***50300017BR.GOV.BCB.BRCODE01051.0.0", got)
	})

	t.Run("insertion order serializes assignment order", func(t *testing.T) {
		t.Parallel()
		tree := emv.NewTree(emv.OrderInsertion)
		require.NoError(t, tree.SetLeaf(58, "BR"))
		require.NoError(t, tree.SetLeaf(0, "01"))

		got, err := tree.Encode()
		require.NoError(t, err)
		assert.Equal(t, "5802BR000201", got)
	})

	t.Run("empty group encodes zero length", func(t *testing.T) {
		t.Parallel()
		tree := emv.NewTree(emv.OrderByID)
		_, err := tree.Group(80)
		require.NoError(t, err)

		got, err := tree.Encode()
		require.NoError(t, err)
		assert.Equal(t, "8000", got)
	})

	t.Run("group content over 99 characters fails with path", func(t *testing.T) {
		t.Parallel()
		tree := emv.NewTree(emv.OrderByID)
		g, err := tree.Group(26)
		require.NoError(t, err)
		require.NoError(t, g.SetLeaf(1, strings.Repeat("a", 60)))
		require.NoError(t, g.SetLeaf(2, strings.Repeat("b", 60)))

		_, err = tree.Encode()
		require.Error(t, err)
		assert.ErrorIs(t, err, emv.ErrContentTooLong)
		assert.Contains(t, err.Error(), "field 26")

		var lenErr *emv.LengthError
		require.ErrorAs(t, err, &lenErr)
		assert.Equal(t, "26", lenErr.Path)
		assert.Equal(t, 128, lenErr.Length)
	})

	t.Run("leaf formatter applies to root leaves only", func(t *testing.T) {
		t.Parallel()
		tree := emv.NewTree(emv.OrderByID)
		require.NoError(t, tree.SetLeaf(54, "1"))
		g, err := tree.Group(62)
		require.NoError(t, err)
		require.NoError(t, g.SetLeaf(54, "1"))

		enc := emv.NewEncoder(emv.WithLeafFormatter(54, func(s string) (string, error) {
			return s + ".00", nil
		}))
		got, err := enc.Encode(tree)
		require.NoError(t, err)
		assert.Equal(t, "54041.00"+"6205"+"54011", got)
	})

	t.Run("formatter errors abort encoding", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		tree := emv.NewTree(emv.OrderByID)
		require.NoError(t, tree.SetLeaf(54, "x"))

		enc := emv.NewEncoder(emv.WithLeafFormatter(54, func(string) (string, error) { return "", boom }))
		_, err := enc.Encode(tree)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("nil formatter is ignored", func(t *testing.T) {
		t.Parallel()
		tree := emv.NewTree(emv.OrderByID)
		require.NoError(t, tree.SetLeaf(54, "1"))

		got, err := emv.NewEncoder(emv.WithLeafFormatter(54, nil)).Encode(tree)
		require.NoError(t, err)
		assert.Equal(t, "54011", got)
	})
}

func twoDigits(n int) string {
	return string([]byte{byte('0' + n/10), byte('0' + n%10)})
}
