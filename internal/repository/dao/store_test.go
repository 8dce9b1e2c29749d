package dao

import (
	"fmt"
	"math/rand"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	store, err := Open(t.TempDir(), LayoutV2)
	require.NoError(t, err)
	return store
}

func TestReadAllMissingFile(t *testing.T) {
	store := newStore(t)

	events, err := store.Events.ReadAll()
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestAppendAndReadAll(t *testing.T) {
	store := newStore(t)

	var want []Staff
	for i := 0; i < 25; i++ {
		s := Staff{ID: int32(100 + i), EventID: 1, Name: fmt.Sprintf("staff %d", i), Team: "Ops"}
		require.NoError(t, store.Staff.Append(s))
		want = append(want, s)
	}

	info, err := os.Stat(store.Staff.Path())
	require.NoError(t, err)
	assert.Equal(t, int64(25*148), info.Size())

	got, err := store.Staff.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	again, err := store.Staff.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestReadAllIgnoresPartialTail(t *testing.T) {
	store := newStore(t)
	ev := Event{ID: 1, OrgID: 7, Name: "Summer Fest", TotalSeats: 500, Type: 1}
	require.NoError(t, store.Events.Append(ev))

	f, err := os.OpenFile(store.Events.Path(), os.O_WRONLY|os.O_APPEND, 0o644)
	require.NoError(t, err)
	_, err = f.Write(make([]byte, 37))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	got, err := store.Events.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []Event{ev}, got)
}

func TestFindFirstMatchWins(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Customers.Append(User{ID: 200, Name: "first", Username: "alice"}))
	require.NoError(t, store.Customers.Append(User{ID: 200, Name: "second", Username: "alice2"}))

	u, err := store.Customers.FindByID(200)
	require.NoError(t, err)
	assert.Equal(t, "first", u.Name)

	u, err = store.Customers.FindByField("username", "alice2")
	require.NoError(t, err)
	assert.Equal(t, "second", u.Name)

	_, err = store.Customers.FindByID(404)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	_, err = store.Customers.FindByField("nickname", "x")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestFilterByForeignKey(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Vendors.Append(Vendor{ID: 300, EventID: 1}))
	require.NoError(t, store.Vendors.Append(Vendor{ID: 301, EventID: 2}))
	require.NoError(t, store.Vendors.Append(Vendor{ID: 302, EventID: 1}))

	got, err := store.Vendors.Filter(func(v Vendor) bool { return v.EventID == 1 })
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int32(300), got[0].ID)
	assert.Equal(t, int32(302), got[1].ID)
}

func TestRewrite(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Events.Append(Event{ID: 1, Name: "a"}))
	require.NoError(t, store.Events.Append(Event{ID: 2, Name: "b"}))

	require.NoError(t, store.Events.Rewrite([]Event{{ID: 2, Name: "b2"}}))

	got, err := store.Events.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []Event{{ID: 2, Name: "b2"}}, got)

	entries, err := os.ReadDir(store.Dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestVerifyAndMigrate(t *testing.T) {
	dir := t.TempDir()
	legacy, err := Open(dir, LayoutV1)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		require.NoError(t, legacy.Organisers.Append(User{ID: int32(100 + i), Username: fmt.Sprintf("org%d", i), Password: "secret"}))
	}

	store, err := Open(dir, LayoutV2)
	require.NoError(t, err)
	assert.ErrorIs(t, store.Verify(), ErrWidthMismatch)

	n, err := store.Migrate(EntityOrganiser, LayoutV1)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	require.NoError(t, store.Verify())

	u, err := store.Organisers.FindByField("username", "org1")
	require.NoError(t, err)
	assert.Equal(t, int32(101), u.ID)
	assert.Equal(t, "secret", u.Password)
}

func TestVerifyAmbiguousLength(t *testing.T) {
	// 5040 bytes hold 36 records at 140 bytes or 35 at 144.
	t.Run("legacy records", func(t *testing.T) {
		dir := t.TempDir()
		legacy, err := Open(dir, LayoutV1)
		require.NoError(t, err)
		for i := 0; i < 36; i++ {
			require.NoError(t, legacy.Organisers.Append(User{
				ID:       int32(100 + i),
				Name:     fmt.Sprintf("Organiser number %d", i),
				Username: fmt.Sprintf("org%d", i),
				Password: "secret",
			}))
		}
		info, err := os.Stat(legacy.Organisers.Path())
		require.NoError(t, err)
		require.EqualValues(t, 5040, info.Size())

		store, err := Open(dir, LayoutV2)
		require.NoError(t, err)
		assert.ErrorIs(t, store.Verify(), ErrWidthMismatch)

		n, err := store.Migrate(EntityOrganiser, LayoutV1)
		require.NoError(t, err)
		assert.Equal(t, 36, n)
		require.NoError(t, store.Verify())
	})

	t.Run("current records", func(t *testing.T) {
		store := newStore(t)
		for i := 0; i < 35; i++ {
			require.NoError(t, store.Customers.Append(User{
				ID:       int32(100 + i),
				Name:     fmt.Sprintf("Customer number %d", i),
				Username: fmt.Sprintf("cust%d", i),
				Password: "secret",
			}))
		}
		require.NoError(t, store.Verify())
	})
}

func TestStoredText(t *testing.T) {
	assert.Equal(t, "Jos\u00c3\u00a9", StoredText("José", LongText))
	assert.Equal(t, "abc", StoredText("abcdef", 4))

	s := Staff{ID: 650, EventID: 318, Name: "José", Team: "Sécurité"}
	back := RoundTrip(StaffCodec(), s)
	assert.Equal(t, StoredText("José", LongText), back.Name)
	assert.Equal(t, StoredText("Sécurité", ShortText), back.Team)
}

func TestNewIDUniqueWithinTable(t *testing.T) {
	store := newStore(t)
	rnd := rand.New(rand.NewSource(1))
	seen := map[int32]bool{}
	for i := 0; i < 50; i++ {
		keys, err := store.Staff.Keys()
		require.NoError(t, err)
		id, err := NextKey(keys, IDMin, IDMax, rnd)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, id, int32(IDMin))
		assert.LessOrEqual(t, id, int32(IDMax))
		assert.False(t, seen[id])
		seen[id] = true
		require.NoError(t, store.Staff.Append(Staff{ID: id}))
	}
}

func TestNextKeyFallsBackToScan(t *testing.T) {
	taken := []int32{1, 2, 4}
	k, err := NextKey(taken, 1, 5, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	assert.Contains(t, []int32{3, 5}, k)

	_, err = NextKey([]int32{1, 2}, 1, 2, nil)
	assert.ErrorIs(t, err, ErrIDSpaceExhausted)
}
