package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/bridgehq/bridge/internal/common"
	"github.com/bridgehq/bridge/internal/server/models"
)

func txDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func profileUser(id string, age int, interests, goals []string) *models.User {
	return &models.User{
		ID:         id,
		Email:      id + "@example.com",
		Age:        age,
		Interests:  interests,
		Goals:      goals,
		AgePrefMin: 18,
		AgePrefMax: 99,
		CreatedAt:  time.Now(),
	}
}

func TestCompatibilityScore(t *testing.T) {
	me := profileUser("me", 30, []string{"chess", "hiking", "cooking"}, []string{"friendship"})

	t.Run("full overlap", func(t *testing.T) {
		other := profileUser("o", 30, []string{"cooking", "chess", "hiking"}, []string{"friendship"})
		require.Equal(t, 100, compatibilityScore(me, other))
	})

	t.Run("no overlap", func(t *testing.T) {
		other := profileUser("o", 30, []string{"poker"}, []string{"networking"})
		require.Equal(t, 0, compatibilityScore(me, other))
	})

	t.Run("top ranked interest outweighs bottom ranked", func(t *testing.T) {
		sharesTop := profileUser("a", 30, []string{"chess"}, nil)
		sharesBottom := profileUser("b", 30, []string{"cooking"}, nil)
		require.Greater(t, compatibilityScore(me, sharesTop), compatibilityScore(me, sharesBottom))
	})

	t.Run("case insensitive", func(t *testing.T) {
		other := profileUser("o", 30, []string{"Chess", "HIKING", "Cooking"}, []string{"Friendship"})
		require.Equal(t, 100, compatibilityScore(me, other))
	})
}

func TestWithinAgePreference(t *testing.T) {
	me := profileUser("me", 30, nil, nil)
	me.AgePrefMin, me.AgePrefMax = 25, 35

	require.True(t, withinAgePreference(me, profileUser("o", 25, nil, nil)))
	require.True(t, withinAgePreference(me, profileUser("o", 35, nil, nil)))
	require.False(t, withinAgePreference(me, profileUser("o", 24, nil, nil)))
	require.False(t, withinAgePreference(me, profileUser("o", 36, nil, nil)))
}

func TestCandidates_FiltersSortsAndCaps(t *testing.T) {
	rm := newFakeRepoManager()
	me := profileUser("me", 30, []string{"chess", "hiking"}, []string{"friendship"})
	me.AgePrefMin, me.AgePrefMax = 25, 35
	rm.users.byID["me"] = me

	rm.users.ungrouped = []*models.User{
		profileUser("too-old", 50, []string{"chess", "hiking"}, []string{"friendship"}),
		profileUser("perfect", 30, []string{"chess", "hiking"}, []string{"friendship"}),
		profileUser("partial", 30, []string{"chess"}, nil),
		profileUser("weak-1", 30, nil, nil),
		profileUser("weak-2", 30, nil, nil),
	}

	svc := NewMatchService(nil, rm)
	got, err := svc.Candidates(context.Background(), "me")
	require.NoError(t, err)

	require.Len(t, got, common.CandidateLimit)
	require.Equal(t, "perfect", got[0].User.ID)
	require.Equal(t, "partial", got[1].User.ID)
	require.Greater(t, got[0].Score, got[1].Score)
	for _, c := range got {
		require.NotEqual(t, "too-old", c.User.ID)
	}
}

func TestSendRequest_Guards(t *testing.T) {
	rm := newFakeRepoManager()
	rm.users.byID["me"] = profileUser("me", 30, nil, nil)
	rm.users.byID["other"] = profileUser("other", 30, nil, nil)
	svc := NewMatchService(nil, rm)
	ctx := context.Background()

	t.Run("self request", func(t *testing.T) {
		_, err := svc.SendRequest(ctx, "me", "me")
		require.ErrorIs(t, err, common.ErrSelfRequest)
	})

	t.Run("unknown candidate", func(t *testing.T) {
		_, err := svc.SendRequest(ctx, "me", "ghost")
		require.ErrorIs(t, err, common.ErrCandidateNotFound)
	})

	t.Run("success then duplicate pending", func(t *testing.T) {
		req, err := svc.SendRequest(ctx, "me", "other")
		require.NoError(t, err)
		require.Equal(t, models.RequestPending, req.Status)
		require.NotEmpty(t, req.ID)

		_, err = svc.SendRequest(ctx, "me", "other")
		require.ErrorIs(t, err, common.ErrRequestPending)
	})

	t.Run("already grouped", func(t *testing.T) {
		rm2 := newFakeRepoManager()
		rm2.users.byID["me"] = profileUser("me", 30, nil, nil)
		rm2.users.byID["other"] = profileUser("other", 30, nil, nil)
		rm2.groups.byID["g1"] = &models.Group{ID: "g1"}
		require.NoError(t, rm2.groups.AddMember(ctx, "g1", "me"))

		_, err := NewMatchService(nil, rm2).SendRequest(ctx, "me", "other")
		require.ErrorIs(t, err, common.ErrAlreadyGrouped)
	})
}

func TestAccept_CreatesGroupForUngroupedPair(t *testing.T) {
	db, mock := txDB(t)
	rm := newFakeRepoManager()
	ctx := context.Background()

	rm.matches.byID["r1"] = &models.MatchRequest{
		ID: "r1", FromID: "sender", ToID: "me", Status: models.RequestPending,
	}

	mock.ExpectBegin()
	mock.ExpectCommit()

	group, err := NewMatchService(db, rm).Accept(ctx, "me", "r1")
	require.NoError(t, err)
	require.NotEmpty(t, group.ID)

	members, err := rm.groups.ActiveMembers(ctx, group.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	require.Equal(t, models.RequestAccepted, rm.matches.byID["r1"].Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccept_JoinsSendersExistingGroup(t *testing.T) {
	db, mock := txDB(t)
	rm := newFakeRepoManager()
	ctx := context.Background()

	rm.groups.byID["g1"] = &models.Group{ID: "g1"}
	require.NoError(t, rm.groups.AddMember(ctx, "g1", "sender"))
	require.NoError(t, rm.groups.AddMember(ctx, "g1", "friend"))
	rm.matches.byID["r1"] = &models.MatchRequest{
		ID: "r1", FromID: "sender", ToID: "me", Status: models.RequestPending,
	}

	mock.ExpectBegin()
	mock.ExpectCommit()

	group, err := NewMatchService(db, rm).Accept(ctx, "me", "r1")
	require.NoError(t, err)
	require.Equal(t, "g1", group.ID)

	n, err := rm.groups.ActiveMemberCount(ctx, "g1")
	require.NoError(t, err)
	require.Equal(t, 3, n)
}

func TestAccept_FullGroup(t *testing.T) {
	db, mock := txDB(t)
	rm := newFakeRepoManager()
	ctx := context.Background()

	rm.groups.byID["g1"] = &models.Group{ID: "g1"}
	for _, id := range []string{"sender", "b", "c", "d"} {
		require.NoError(t, rm.groups.AddMember(ctx, "g1", id))
	}
	rm.matches.byID["r1"] = &models.MatchRequest{
		ID: "r1", FromID: "sender", ToID: "me", Status: models.RequestPending,
	}

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := NewMatchService(db, rm).Accept(ctx, "me", "r1")
	require.ErrorIs(t, err, common.ErrGroupFull)
	require.Equal(t, models.RequestPending, rm.matches.byID["r1"].Status)
}

func TestAccept_WrongAddressee(t *testing.T) {
	db, mock := txDB(t)
	rm := newFakeRepoManager()

	rm.matches.byID["r1"] = &models.MatchRequest{
		ID: "r1", FromID: "sender", ToID: "someone-else", Status: models.RequestPending,
	}

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := NewMatchService(db, rm).Accept(context.Background(), "me", "r1")
	require.ErrorIs(t, err, common.ErrRequestNotFound)
}

func TestReject(t *testing.T) {
	rm := newFakeRepoManager()
	ctx := context.Background()

	rm.matches.byID["r1"] = &models.MatchRequest{
		ID: "r1", FromID: "sender", ToID: "me", Status: models.RequestPending,
	}

	svc := NewMatchService(nil, rm)
	require.NoError(t, svc.Reject(ctx, "me", "r1"))
	require.Equal(t, models.RequestRejected, rm.matches.byID["r1"].Status)

	// Acting on a settled request fails.
	require.ErrorIs(t, svc.Reject(ctx, "me", "r1"), common.ErrRequestNotPending)
}
