package services

import (
	"sync"
	"testing"

	"neighborhub/internal/models"
	"neighborhub/internal/utils"
	"neighborhub/internal/validators"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseCompletionPolicy(t *testing.T) {
	for _, tc := range []struct {
		in      string
		want    CompletionPolicy
		wantErr bool
	}{
		{"", CompletionByOwner, false},
		{"owner", CompletionByOwner, false},
		{"owner_or_helper", CompletionByOwnerOrHelper, false},
		{"any_authenticated", CompletionByAnyUser, false},
		{"helper", "", true},
	} {
		got, err := ParseCompletionPolicy(tc.in)
		if tc.wantErr {
			assert.Error(t, err, tc.in)
			continue
		}
		assert.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestCreateRequestStartsPending(t *testing.T) {
	env := newTestEnv(t, CompletionByOwner)
	alice := env.createUser(t, "alice")

	request := env.createRequest(t, alice)

	assert.Equal(t, models.RequestStatusPending, request.Status)
	assert.Nil(t, request.CompletedBy)
	assert.Equal(t, alice.ID, request.RequesterID)
	assert.False(t, request.CreatedAt.IsZero())
	assert.Equal(t, []models.EventKind{models.EventNewHelpRequest}, env.sink.Kinds())
	assert.Nil(t, env.sink.Last().Target)
}

func TestCreateRequestRejectsInvalidInput(t *testing.T) {
	env := newTestEnv(t, CompletionByOwner)
	alice := env.createUser(t, "alice")

	cases := map[string]validators.CreateRequestInput{
		"unknown category": {Category: "rocketry", Description: "x", Urgency: "low", PreferredTime: "now"},
		"unknown urgency":  {Category: "cook", Description: "x", Urgency: "urgent", PreferredTime: "now"},
		"blank desc":       {Category: "cook", Description: "   ", Urgency: "low", PreferredTime: "now"},
		"missing time":     {Category: "cook", Description: "dinner", Urgency: "low"},
		"bad target":       {Category: "cook", Description: "dinner", Urgency: "low", PreferredTime: "7pm", TargetHelperID: "nope"},
	}

	for name, input := range cases {
		in := input
		_, err := env.requestSvc.CreateRequest(env.ctx, alice.ID, &in)
		assert.True(t, utils.IsKind(err, utils.KindValidation), "%s: got %v", name, err)
	}
	assert.Empty(t, env.sink.Kinds())
}

func TestCreateRequestWithTargetHelper(t *testing.T) {
	env := newTestEnv(t, CompletionByOwner)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	input := func(target string) *validators.CreateRequestInput {
		return &validators.CreateRequestInput{
			Category: "electrical", Description: "Fuse", Urgency: "medium",
			PreferredTime: "morning", TargetHelperID: target,
		}
	}

	_, err := env.requestSvc.CreateRequest(env.ctx, alice.ID, input(alice.ID.Hex()))
	assert.True(t, utils.IsKind(err, utils.KindValidation))

	_, err = env.requestSvc.CreateRequest(env.ctx, alice.ID, input(primitive.NewObjectID().Hex()))
	assert.True(t, utils.IsKind(err, utils.KindValidation))

	request, err := env.requestSvc.CreateRequest(env.ctx, alice.ID, input(bob.ID.Hex()))
	require.NoError(t, err)
	require.NotNil(t, request.TargetHelperID)
	assert.Equal(t, bob.ID, *request.TargetHelperID)

	assert.Equal(t, []models.EventKind{models.EventNewHelpRequest, models.EventDirectServiceRequest}, env.sink.Kinds())
	direct := env.sink.Last()
	require.NotNil(t, direct.Target)
	assert.Equal(t, bob.ID, *direct.Target)
}

func TestOfferHelp(t *testing.T) {
	env := newTestEnv(t, CompletionByOwner)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")

	request := env.createRequest(t, alice)

	_, err := env.requestSvc.OfferHelp(env.ctx, request.ID, alice.ID)
	assert.True(t, utils.IsKind(err, utils.KindForbidden), "self help: %v", err)

	assigned, err := env.requestSvc.OfferHelp(env.ctx, request.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusInProgress, assigned.Status)
	require.NotNil(t, assigned.CompletedBy)
	assert.Equal(t, bob.ID, *assigned.CompletedBy)

	event := env.sink.Last()
	assert.Equal(t, models.EventRequestHelp, event.Kind)
	require.NotNil(t, event.Target)
	assert.Equal(t, alice.ID, *event.Target)

	_, err = env.requestSvc.OfferHelp(env.ctx, request.ID, carol.ID)
	assert.True(t, utils.IsKind(err, utils.KindConflict), "second helper: %v", err)

	_, err = env.requestSvc.OfferHelp(env.ctx, primitive.NewObjectID(), carol.ID)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))

	cancelled := env.createRequest(t, alice)
	_, err = env.requestSvc.CancelRequest(env.ctx, cancelled.ID, alice.ID)
	require.NoError(t, err)
	_, err = env.requestSvc.OfferHelp(env.ctx, cancelled.ID, carol.ID)
	assert.True(t, utils.IsKind(err, utils.KindInvalidState), "cancelled: %v", err)
}

func TestOfferHelpRecordsRejectedAttempts(t *testing.T) {
	env := newTestEnv(t, CompletionByOwner)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")

	request := env.inProgressRequest(t, alice, bob)
	_, err := env.requestSvc.OfferHelp(env.ctx, request.ID, carol.ID)
	require.Error(t, err)

	entries, total, err := env.activity.ListForUser(env.ctx, carol.ID, utils.NewPaginationParams(10))
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	assert.Equal(t, models.ActivityOfferHelp, entries[0].Action)
	assert.Equal(t, models.ActivityStatusFailed, entries[0].Status)
}

func TestOfferHelpConcurrentExactlyOneWins(t *testing.T) {
	env := newTestEnv(t, CompletionByOwner)
	alice := env.createUser(t, "alice")
	request := env.createRequest(t, alice)

	const helpers = 16
	ids := make([]primitive.ObjectID, helpers)
	for i := range ids {
		ids[i] = env.createUser(t, "helper"+primitive.NewObjectID().Hex()).ID
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		winners   []primitive.ObjectID
		conflicts int
	)
	for _, id := range ids {
		wg.Add(1)
		go func(helperID primitive.ObjectID) {
			defer wg.Done()
			_, err := env.requestSvc.OfferHelp(env.ctx, request.ID, helperID)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				winners = append(winners, helperID)
			} else if utils.IsKind(err, utils.KindConflict) {
				conflicts++
			}
		}(id)
	}
	wg.Wait()

	require.Len(t, winners, 1)
	assert.Equal(t, helpers-1, conflicts)

	stored, err := env.requests.GetByID(env.ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, winners[0], *stored.CompletedBy)
}

func TestMarkCompletedPolicyMatrix(t *testing.T) {
	type actor int
	const (
		owner actor = iota
		helper
		stranger
	)

	cases := []struct {
		policy  CompletionPolicy
		actor   actor
		allowed bool
	}{
		{CompletionByOwner, owner, true},
		{CompletionByOwner, helper, false},
		{CompletionByOwner, stranger, false},
		{CompletionByOwnerOrHelper, owner, true},
		{CompletionByOwnerOrHelper, helper, true},
		{CompletionByOwnerOrHelper, stranger, false},
		{CompletionByAnyUser, owner, true},
		{CompletionByAnyUser, helper, true},
		{CompletionByAnyUser, stranger, true},
	}

	for _, tc := range cases {
		env := newTestEnv(t, tc.policy)
		alice := env.createUser(t, "alice")
		bob := env.createUser(t, "bob")
		dave := env.createUser(t, "dave")
		request := env.inProgressRequest(t, alice, bob)

		by := map[actor]primitive.ObjectID{owner: alice.ID, helper: bob.ID, stranger: dave.ID}[tc.actor]
		result, err := env.requestSvc.MarkCompleted(env.ctx, request.ID, by)

		if !tc.allowed {
			assert.True(t, utils.IsKind(err, utils.KindForbidden), "%s/%d: %v", tc.policy, tc.actor, err)
			continue
		}
		require.NoError(t, err, "%s/%d", tc.policy, tc.actor)
		assert.Equal(t, models.RequestStatusCompleted, result.Request.Status)
		assert.NotNil(t, result.Request.CompletedAt)
		assert.Equal(t, tc.actor == owner, result.RatingPrompt)
	}
}

func TestMarkCompletedRequiresInProgress(t *testing.T) {
	env := newTestEnv(t, CompletionByOwner)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	pending := env.createRequest(t, alice)
	_, err := env.requestSvc.MarkCompleted(env.ctx, pending.ID, alice.ID)
	assert.True(t, utils.IsKind(err, utils.KindInvalidState))

	done := env.completedRequest(t, alice, bob)
	_, err = env.requestSvc.MarkCompleted(env.ctx, done.ID, alice.ID)
	assert.True(t, utils.IsKind(err, utils.KindInvalidState))

	_, err = env.requestSvc.MarkCompleted(env.ctx, primitive.NewObjectID(), alice.ID)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}

func TestCancelRequest(t *testing.T) {
	env := newTestEnv(t, CompletionByOwner)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	request := env.inProgressRequest(t, alice, bob)

	_, err := env.requestSvc.CancelRequest(env.ctx, request.ID, bob.ID)
	assert.True(t, utils.IsKind(err, utils.KindForbidden))

	cancelled, err := env.requestSvc.CancelRequest(env.ctx, request.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusCancelled, cancelled.Status)
	assert.Nil(t, cancelled.CompletedBy)
	assert.NotNil(t, cancelled.CancelledAt)

	_, err = env.requestSvc.CancelRequest(env.ctx, request.ID, alice.ID)
	assert.True(t, utils.IsKind(err, utils.KindInvalidState))
}

func TestUpdateRequestDetails(t *testing.T) {
	env := newTestEnv(t, CompletionByOwner)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	request := env.createRequest(t, alice)

	_, err := env.requestSvc.UpdateRequestDetails(env.ctx, request.ID, bob.ID, &validators.UpdateRequestInput{
		Description: utils.StringPtr("hijack"),
	})
	assert.True(t, utils.IsKind(err, utils.KindForbidden))

	updated, err := env.requestSvc.UpdateRequestDetails(env.ctx, request.ID, alice.ID, &validators.UpdateRequestInput{
		Description: utils.StringPtr("Burst pipe under the sink"),
		Urgency:     utils.StringPtr("low"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Burst pipe under the sink", updated.Description)
	assert.Equal(t, models.UrgencyLow, updated.Urgency)
	assert.Equal(t, models.CategoryPlumbing, updated.Category)

	_, err = env.requestSvc.UpdateRequestDetails(env.ctx, request.ID, alice.ID, &validators.UpdateRequestInput{
		Urgency: utils.StringPtr("whenever"),
	})
	assert.True(t, utils.IsKind(err, utils.KindValidation))
}

func TestApplyUpdateDispatch(t *testing.T) {
	env := newTestEnv(t, CompletionByOwner)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")

	request := env.createRequest(t, alice)

	// completed_by naming somebody else
	_, err := env.requestSvc.ApplyUpdate(env.ctx, request.ID, bob.ID, &validators.UpdateRequestInput{
		Status:      utils.StringPtr("in-progress"),
		CompletedBy: utils.StringPtr(carol.ID.Hex()),
	})
	assert.True(t, utils.IsKind(err, utils.KindForbidden))

	_, err = env.requestSvc.ApplyUpdate(env.ctx, request.ID, bob.ID, &validators.UpdateRequestInput{
		Status: utils.StringPtr("in-progress"),
	})
	assert.True(t, utils.IsKind(err, utils.KindValidation))

	_, err = env.requestSvc.ApplyUpdate(env.ctx, request.ID, alice.ID, &validators.UpdateRequestInput{
		Status: utils.StringPtr("pending"),
	})
	assert.True(t, utils.IsKind(err, utils.KindValidation))

	_, err = env.requestSvc.ApplyUpdate(env.ctx, request.ID, alice.ID, &validators.UpdateRequestInput{
		Status:      utils.StringPtr("cancelled"),
		Description: utils.StringPtr("changed my mind"),
	})
	assert.True(t, utils.IsKind(err, utils.KindValidation))

	_, err = env.requestSvc.ApplyUpdate(env.ctx, request.ID, alice.ID, &validators.UpdateRequestInput{})
	assert.True(t, utils.IsKind(err, utils.KindValidation))

	result, err := env.requestSvc.ApplyUpdate(env.ctx, request.ID, bob.ID, &validators.UpdateRequestInput{
		Status:      utils.StringPtr("in-progress"),
		CompletedBy: utils.StringPtr(bob.ID.Hex()),
	})
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusInProgress, result.Request.Status)

	result, err = env.requestSvc.ApplyUpdate(env.ctx, request.ID, alice.ID, &validators.UpdateRequestInput{
		Status: utils.StringPtr("completed"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusCompleted, result.Request.Status)
	assert.True(t, result.RatingPrompt)

	other := env.createRequest(t, alice)
	result, err = env.requestSvc.ApplyUpdate(env.ctx, other.ID, alice.ID, &validators.UpdateRequestInput{
		Status: utils.StringPtr("cancelled"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusCancelled, result.Request.Status)

	third := env.createRequest(t, alice)
	result, err = env.requestSvc.ApplyUpdate(env.ctx, third.ID, alice.ID, &validators.UpdateRequestInput{
		PreferredTime: utils.StringPtr("after 6pm"),
	})
	require.NoError(t, err)
	assert.Equal(t, "after 6pm", result.Request.PreferredTime)
	assert.False(t, result.RatingPrompt)
}

func TestDeleteRequestCascadesRating(t *testing.T) {
	env := newTestEnv(t, CompletionByOwner)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	first := env.completedRequest(t, alice, bob)
	second := env.completedRequest(t, alice, bob)
	env.rate(t, first, 5)
	env.rate(t, second, 2)

	err := env.requestSvc.DeleteRequest(env.ctx, first.ID, bob.ID)
	assert.True(t, utils.IsKind(err, utils.KindForbidden))

	require.NoError(t, env.requestSvc.DeleteRequest(env.ctx, first.ID, alice.ID))

	_, err = env.requestSvc.GetRequest(env.ctx, first.ID, alice.ID)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))

	_, err = env.ratingSvc.GetRequestRating(env.ctx, first.ID)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))

	stats, err := env.ratingSvc.GetUserRatingStats(env.ctx, bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.TotalRatings)
	assert.Equal(t, 2.0, stats.AverageRating)
	env.requireAggregateConsistent(t, bob.ID)

	err = env.requestSvc.DeleteRequest(env.ctx, first.ID, alice.ID)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}

func TestDeleteRequestWithoutRating(t *testing.T) {
	env := newTestEnv(t, CompletionByOwner)
	alice := env.createUser(t, "alice")

	request := env.createRequest(t, alice)
	require.NoError(t, env.requestSvc.DeleteRequest(env.ctx, request.ID, alice.ID))

	_, total, err := env.requestSvc.ListMine(env.ctx, alice.ID, utils.NewPaginationParams(10))
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestGetRequestVisibility(t *testing.T) {
	env := newTestEnv(t, CompletionByOwner)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	dave := env.createUser(t, "dave")

	request := env.inProgressRequest(t, alice, bob)

	view, err := env.requestSvc.GetRequest(env.ctx, request.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", view.RequesterName)
	assert.Equal(t, "bob", view.HelperName)

	_, err = env.requestSvc.GetRequest(env.ctx, request.ID, bob.ID)
	assert.NoError(t, err)

	_, err = env.requestSvc.GetRequest(env.ctx, request.ID, dave.ID)
	assert.True(t, utils.IsKind(err, utils.KindForbidden))
}

func TestListAllAnnotatesParticipants(t *testing.T) {
	env := newTestEnv(t, CompletionByOwner)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	env.createRequest(t, alice)
	env.inProgressRequest(t, bob, alice)

	views, total, err := env.requestSvc.ListAll(env.ctx, utils.NewPaginationParams(10))
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, views, 2)

	for _, v := range views {
		assert.NotEmpty(t, v.RequesterName)
		assert.Equal(t, string(models.RoleResident), v.RequesterRole)
		if v.CompletedBy != nil {
			assert.Equal(t, "alice", v.HelperName)
		} else {
			assert.Empty(t, v.HelperName)
		}
	}

	mine, total, err := env.requestSvc.ListMine(env.ctx, alice.ID, utils.NewPaginationParams(10))
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, mine, 1)
	assert.Equal(t, alice.ID, mine[0].RequesterID)
}
