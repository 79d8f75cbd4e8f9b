package vec

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// tracker audits element lifetimes: every value handed out is live until its
// Dispose runs, and each Dispose may run at most once per value.
type tracker struct {
	live     map[int]int
	next     int
	clones   int
	failAt   int // n-th clone fails; 0 disables
	overFree bool
}

func newTracker() *tracker {
	return &tracker{live: map[int]int{}}
}

func (tr *tracker) make(val int) resource {
	tr.next++
	tr.live[tr.next] = 1
	return resource{id: tr.next, val: val, tr: tr}
}

func (tr *tracker) liveCount() (n int) {
	for _, c := range tr.live {
		n += c
	}
	return
}

func (tr *tracker) check(t *testing.T, wantLive int) {
	t.Helper()
	require.False(t, tr.overFree, "some element disposed twice")
	require.Equal(t, wantLive, tr.liveCount())
}

type resource struct {
	id  int
	val int
	tr  *tracker
}

func (r resource) Clone() (resource, error) {
	tr := r.tr
	tr.clones++
	if tr.failAt != 0 && tr.clones >= tr.failAt {
		return resource{}, errors.New("clone failed")
	}
	return tr.make(r.val), nil
}

func (r resource) Dispose() {
	if r.tr == nil {
		return
	}
	r.tr.live[r.id]--
	if r.tr.live[r.id] < 0 {
		r.tr.overFree = true
	}
}

func fill(t *testing.T, tr *tracker, n int) *Vector[resource] {
	t.Helper()
	v := New[resource]()
	require.NoError(t, v.Reserve(n))
	for i := 0; i < n; i++ {
		_, err := v.Push(tr.make(i))
		require.NoError(t, err)
	}
	return v
}

func values(v *Vector[resource]) (out []int) {
	for _, r := range v.All() {
		out = append(out, r.val)
	}
	return
}

func TestResourcePushRelocates(t *testing.T) {
	tr := newTracker()
	v := fill(t, tr, 4)
	require.Equal(t, 4, v.Cap())

	// growth duplicates all four elements and disposes the originals
	_, err := v.Push(tr.make(4))
	require.NoError(t, err)
	require.Equal(t, 8, v.Cap())
	require.Equal(t, []int{0, 1, 2, 3, 4}, values(v))
	tr.check(t, 5)

	v.Release()
	tr.check(t, 0)
}

func TestResourcePushRelocateFailure(t *testing.T) {
	tr := newTracker()
	v := fill(t, tr, 4)

	before := values(v)
	tr.failAt = tr.clones + 3 // third relocated element fails

	x := tr.make(99)
	_, err := v.Push(x)
	require.Error(t, err)

	// untouched: same length, capacity and contents
	require.Equal(t, 4, v.Len())
	require.Equal(t, 4, v.Cap())
	require.Equal(t, before, values(v))

	// the caller still owns the rejected value
	x.Dispose()
	tr.check(t, 4)

	v.Release()
	tr.check(t, 0)
}

func TestResourceInsertRelocateFailure(t *testing.T) {
	tr := newTracker()
	v := fill(t, tr, 4)

	before := values(v)
	tr.failAt = tr.clones + 4 // fails while relocating the suffix

	x := tr.make(99)
	_, err := v.Insert(2, x)
	require.Error(t, err)
	require.Equal(t, 4, v.Len())
	require.Equal(t, 4, v.Cap())
	require.Equal(t, before, values(v))

	x.Dispose()
	tr.check(t, 4)

	v.Release()
	tr.check(t, 0)
}

func TestResourceInsertInPlace(t *testing.T) {
	tr := newTracker()
	v := fill(t, tr, 3)
	require.NoError(t, v.Reserve(8))

	_, err := v.Insert(1, tr.make(9))
	require.NoError(t, err)
	require.Equal(t, []int{0, 9, 1, 2}, values(v))
	tr.check(t, 4)

	v.Release()
	tr.check(t, 0)
}

func TestResourceErasePopResize(t *testing.T) {
	tr := newTracker()
	v := fill(t, tr, 5)

	v.Erase(1)
	require.Equal(t, []int{0, 2, 3, 4}, values(v))
	tr.check(t, 4)

	v.Pop()
	tr.check(t, 3)

	require.NoError(t, v.Resize(1))
	tr.check(t, 1)

	// growing back value-initializes; zero resources dispose to nothing
	require.NoError(t, v.Resize(3))
	require.Equal(t, 3, v.Len())
	tr.check(t, 1)

	v.Release()
	tr.check(t, 0)
}

func TestResourceReserve(t *testing.T) {
	tr := newTracker()
	v := fill(t, tr, 3)

	require.NoError(t, v.Reserve(16))
	require.Equal(t, 16, v.Cap())
	require.Equal(t, []int{0, 1, 2}, values(v))
	tr.check(t, 3)

	v.Release()
	tr.check(t, 0)
}

func TestResourceClone(t *testing.T) {
	tr := newTracker()
	v := fill(t, tr, 3)

	o, err := v.Clone()
	require.NoError(t, err)
	require.Equal(t, values(v), values(o))
	tr.check(t, 6)

	// failure midway unwinds the partial copy and leaves the source alone
	tr.failAt = tr.clones + 2
	_, err = v.Clone()
	require.Error(t, err)
	require.Equal(t, []int{0, 1, 2}, values(v))
	tr.check(t, 6)

	v.Release()
	o.Release()
	tr.check(t, 0)
}

func TestResourceAssign(t *testing.T) {
	t.Run("strong path failure", func(t *testing.T) {
		tr := newTracker()
		dst := fill(t, tr, 2)
		src := fill(t, tr, 5)

		tr.failAt = tr.clones + 3
		require.Error(t, dst.Assign(src))
		require.Equal(t, []int{0, 1}, values(dst))
		require.Equal(t, []int{0, 1, 2, 3, 4}, values(src))
		tr.check(t, 7)

		dst.Release()
		src.Release()
		tr.check(t, 0)
	})
	t.Run("shorter disposes tail", func(t *testing.T) {
		tr := newTracker()
		dst := fill(t, tr, 4)
		src := fill(t, tr, 2)

		require.NoError(t, dst.Assign(src))
		require.Equal(t, []int{0, 1}, values(dst))
		require.Equal(t, 4, dst.Cap())
		tr.check(t, 4)

		dst.Release()
		src.Release()
		tr.check(t, 0)
	})
	t.Run("longer in place", func(t *testing.T) {
		tr := newTracker()
		dst := fill(t, tr, 2)
		require.NoError(t, dst.Reserve(8))
		src := fill(t, tr, 5)

		require.NoError(t, dst.Assign(src))
		require.Equal(t, []int{0, 1, 2, 3, 4}, values(dst))
		tr.check(t, 10)

		dst.Release()
		src.Release()
		tr.check(t, 0)
	})
}

type handle struct {
	closed *bool
}

func (h handle) Dispose() {
	*h.closed = true
}

func TestMoveOnly(t *testing.T) {
	var closed bool
	v := New[handle]()
	_, err := v.Push(handle{closed: &closed})
	require.NoError(t, err)

	// relocation of a move-only type is bitwise: no dispose fired
	require.NoError(t, v.Reserve(64))
	require.False(t, closed)

	require.Panics(t, func() { v.Clone() })
	require.Panics(t, func() { v.Assign(New[handle]()) })

	v.Release()
	require.True(t, closed)
}
