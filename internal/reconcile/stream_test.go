package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sumIfEqual recycles c into v when they are equal, yielding c+v.
var sumIfEqual = RecycleFunc[int, int, int](func(c, v int) (int, bool) {
	if c == v {
		return c + v, true
	}
	return 0, false
})

// intSink writes recycled sums and added values as-is.
type intSink struct {
	removed []int
}

func (s *intSink) Recycled(r int, _, _ End) int { return r }
func (s *intSink) Added(v int) int               { return v }
func (s *intSink) Removed(c int)                 { s.removed = append(s.removed, c) }

// names collects instruction names of a full stream.
func names[C, V, R any](s *Stream[C, V, R]) []string {
	var out []string
	for in := range s.All() {
		out = append(out, in.Name())
	}
	return out
}

func TestStream_MoveAndInsert(t *testing.T) {
	old := []int{1, 2, 3, 4}
	next := []int{1, 3, 2, 5, 4}

	s := NewStream[int, int, int](FromSlice(old), FromSlice(next), sumIfEqual)
	assert.Equal(t, []string{
		"recycle_head_head",
		"recycle_tail_tail",
		"recycle_tail_head",
		"recycle_head_head",
		"add_remaining",
	}, names(s))

	sink := &intSink{}
	got := Reconcile[int, int, int, int](old, next, sumIfEqual, sink)
	assert.Equal(t, []int{2, 6, 4, 5, 8}, got)
	assert.Empty(t, sink.removed)
}

func TestStream_AddRemainingPayload(t *testing.T) {
	s := NewStream[int, int, int](FromSlice([]int{1, 2, 3, 4}), FromSlice([]int{1, 3, 2, 5, 4}), sumIfEqual)

	var last Instruction[int, int, int]
	for in := range s.All() {
		last = in
	}
	assert.Equal(t, KindAddRemaining, last.Kind)
	assert.Equal(t, []int{5}, last.Values)
	assert.True(t, s.Finished())
}

func TestStream_EmptyInputs(t *testing.T) {
	tests := []struct {
		name  string
		old   []int
		next  []int
		kind  Kind
		check func(t *testing.T, in Instruction[int, int, int])
	}{
		{
			name: "both empty",
			kind: KindDone,
		},
		{
			name: "old empty",
			next: []int{7, 8},
			kind: KindAddRemaining,
			check: func(t *testing.T, in Instruction[int, int, int]) {
				assert.Equal(t, []int{7, 8}, in.Values)
			},
		},
		{
			name: "new empty",
			old:  []int{7, 8},
			kind: KindRemoveRemaining,
			check: func(t *testing.T, in Instruction[int, int, int]) {
				assert.Equal(t, []int{7, 8}, in.Components)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStream[int, int, int](FromSlice(tt.old), FromSlice(tt.next), sumIfEqual)

			in, ok := s.Next()
			require.True(t, ok)
			assert.Equal(t, tt.kind, in.Kind)
			if tt.check != nil {
				tt.check(t, in)
			}

			_, ok = s.Next()
			assert.False(t, ok, "stream must stop after the terminal instruction")
		})
	}
}

func TestStream_NoOpDiff(t *testing.T) {
	items := []int{5, 6, 7, 8, 9}
	s := NewStream[int, int, int](FromSlice(items), FromSlice(items), sumIfEqual)

	got := names(s)
	require.Len(t, got, len(items)+1)
	for i := range items {
		assert.Equal(t, "recycle_head_head", got[i])
	}
	assert.Equal(t, "done", got[len(items)])
}

func TestStream_TailTailBeatsHeadTail(t *testing.T) {
	// Everything is compatible except the head-head pairing.
	rec := RecycleFunc[string, string, string](func(c, v string) (string, bool) {
		if c == "a" && v == "x" {
			return "", false
		}
		return c + v, true
	})

	s := NewStream[string, string, string](FromSlice([]string{"a", "b"}), FromSlice([]string{"x", "y"}), rec)

	in, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, KindRecycle, in.Kind)
	assert.Equal(t, Tail, in.OldEnd)
	assert.Equal(t, Tail, in.NewEnd)
	assert.Equal(t, "by", in.Result)
}

func TestStream_HeadTailBeatsTailHead(t *testing.T) {
	// Only the crossed pairings are compatible.
	rec := RecycleFunc[string, string, string](func(c, v string) (string, bool) {
		if (c == "a" && v == "y") || (c == "b" && v == "x") {
			return c + v, true
		}
		return "", false
	})

	s := NewStream[string, string, string](FromSlice([]string{"a", "b"}), FromSlice([]string{"x", "y"}), rec)

	var got []Instruction[string, string, string]
	for in := range s.All() {
		got = append(got, in)
	}
	require.Len(t, got, 3)
	assert.Equal(t, "recycle_head_tail", got[0].Name())
	assert.Equal(t, "ay", got[0].Result)
	assert.Equal(t, "recycle_head_head", got[1].Name())
	assert.Equal(t, "bx", got[1].Result)
	assert.Equal(t, KindDone, got[2].Kind)
}

func TestStream_NothingMatches(t *testing.T) {
	s := NewStream[int, int, int](FromSlice([]int{1, 2, 3}), FromSlice([]int{4, 5, 6}), sumIfEqual)

	var removed []int
	var added []int
	for in := range s.All() {
		switch in.Kind {
		case KindRemove:
			assert.Equal(t, Head, in.OldEnd)
			removed = append(removed, in.Component)
		case KindAddRemaining:
			added = in.Values
		case KindRecycle:
			t.Fatalf("unexpected recycle %s", in.Name())
		}
	}
	assert.Equal(t, []int{1, 2, 3}, removed)
	assert.Equal(t, []int{4, 5, 6}, added)
}

func TestStream_LastValueWithoutCandidate(t *testing.T) {
	// One value left: the old head is removed and the value retried.
	s := NewStream[int, int, int](FromSlice([]int{1, 2}), FromSlice([]int{2}), sumIfEqual)

	assert.Equal(t, []string{"remove_head", "recycle_head_head", "done"}, names(s))
}

func TestStream_LastComponentIsRemoved(t *testing.T) {
	// A single old component that only matches the new tail is still removed
	// once no old tail is left to try.
	s := NewStream[int, int, int](FromSlice([]int{2}), FromSlice([]int{1, 2}), sumIfEqual)

	got := []Instruction[int, int, int]{}
	for in := range s.All() {
		got = append(got, in)
	}
	require.Len(t, got, 2)
	assert.Equal(t, "remove_head", got[0].Name())
	assert.Equal(t, 2, got[0].Component)
	assert.Equal(t, []int{1, 2}, got[1].Values)
}

func TestStream_EarlyStopLeavesRestUnread(t *testing.T) {
	oldSeq := FromSlice([]int{1, 2, 3})
	newSeq := FromSlice([]int{1, 2, 3})
	s := NewStream[int, int, int](oldSeq, newSeq, sumIfEqual)

	for in := range s.All() {
		assert.Equal(t, 2, in.Result)
		break
	}

	assert.False(t, s.Finished())
	assert.Equal(t, 2, oldSeq.Len())
	assert.Equal(t, 2, newSeq.Len())
}

func TestStream_Tally(t *testing.T) {
	s := NewStream[int, int, int](FromSlice([]int{1, 2, 3, 4}), FromSlice([]int{1, 3, 2, 5, 4}), sumIfEqual)

	c := Tally(s)
	assert.Equal(t, 4, c.Recycled)
	assert.Equal(t, 0, c.Removed)
	assert.Equal(t, 1, c.Added)
	assert.Equal(t, KindAddRemaining, c.Final)
	assert.Equal(t, 4, c.Old())
	assert.Equal(t, 5, c.New())
}

func TestRecycleFunc_RejectHandsBackInputs(t *testing.T) {
	out := sumIfEqual.Recycle(3, 4)
	require.False(t, out.IsRecycled())

	c, v := out.Rejected()
	assert.Equal(t, 3, c)
	assert.Equal(t, 4, v)
	assert.Zero(t, out.Result())

	out = sumIfEqual.Recycle(4, 4)
	require.True(t, out.IsRecycled())
	assert.Equal(t, 8, out.Result())
}

func TestKind_Names(t *testing.T) {
	assert.Equal(t, "remove_remaining", KindRemoveRemaining.String())
	assert.Equal(t, "unknown", Kind(0).String())
	assert.True(t, KindDone.Final())
	assert.False(t, KindRemove.Final())
}

func TestPlacement_FillsFromBothEnds(t *testing.T) {
	p := NewPlacement(4)
	assert.Equal(t, 4, p.Remaining())
	assert.Equal(t, 0, p.Next(Head))
	assert.Equal(t, 3, p.Next(Tail))
	assert.Equal(t, 2, p.Next(Tail))
	assert.Equal(t, 1, p.Next(Head))
	assert.Equal(t, 0, p.Remaining())
}

func TestParseKind(t *testing.T) {
	k, ok := ParseKind("add_remaining")
	assert.True(t, ok)
	assert.Equal(t, KindAddRemaining, k)

	_, ok = ParseKind("nope")
	assert.False(t, ok)
}
