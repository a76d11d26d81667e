package message

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/clinic-api/internal/model"
)

type fakeMessageRepo struct {
	messages []*model.Message
	groups   map[int64][]int64
	nextID   int64
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{groups: map[int64][]int64{}, nextID: 1}
}

func (f *fakeMessageRepo) Create(_ context.Context, m *model.Message) (*model.Message, error) {
	m.ID = f.nextID
	f.nextID++
	f.messages = append(f.messages, m)
	return m, nil
}

func (f *fakeMessageRepo) ListConversation(_ context.Context, userID, otherID int64, limit int) ([]*model.Message, error) {
	var out []*model.Message
	for _, m := range f.messages {
		if m.RecipientID == nil {
			continue
		}
		if (m.SenderID == userID && *m.RecipientID == otherID) ||
			(m.SenderID == otherID && *m.RecipientID == userID) {
			out = append(out, m)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeMessageRepo) ListGroupMessages(_ context.Context, groupID int64, limit int) ([]*model.Message, error) {
	var out []*model.Message
	for _, m := range f.messages {
		if m.GroupID != nil && *m.GroupID == groupID {
			out = append(out, m)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeMessageRepo) MarkRead(_ context.Context, id, recipientID int64) error {
	for _, m := range f.messages {
		if m.ID == id && m.RecipientID != nil && *m.RecipientID == recipientID {
			m.IsRead = true
		}
	}
	return nil
}

func (f *fakeMessageRepo) CreateGroup(_ context.Context, g *model.MessageGroup, memberIDs []int64) (*model.MessageGroup, error) {
	g.ID = f.nextID
	f.nextID++
	f.groups[g.ID] = memberIDs
	return g, nil
}

func (f *fakeMessageRepo) ListGroupsForUser(context.Context, int64) ([]*model.MessageGroup, error) {
	return nil, nil
}

func TestSendRequiresExactlyOneAddress(t *testing.T) {
	svc := NewService(newFakeMessageRepo())

	recipient := int64(2)
	group := int64(3)

	// Neither address.
	_, err := svc.Send(context.Background(), 1, &model.SendMessageRequest{Content: "hi"})
	assert.ErrorIs(t, err, ErrBadAddress)

	// Both addresses.
	_, err = svc.Send(context.Background(), 1, &model.SendMessageRequest{
		Content: "hi", RecipientID: &recipient, GroupID: &group,
	})
	assert.ErrorIs(t, err, ErrBadAddress)

	// Exactly one of each is fine.
	_, err = svc.Send(context.Background(), 1, &model.SendMessageRequest{Content: "hi", RecipientID: &recipient})
	assert.NoError(t, err)

	_, err = svc.Send(context.Background(), 1, &model.SendMessageRequest{Content: "hi", GroupID: &group})
	assert.NoError(t, err)
}

func TestSendDefaultsMessageType(t *testing.T) {
	svc := NewService(newFakeMessageRepo())

	recipient := int64(2)
	msg, err := svc.Send(context.Background(), 1, &model.SendMessageRequest{Content: "hi", RecipientID: &recipient})
	require.NoError(t, err)
	assert.Equal(t, model.MessageTypeText, msg.MessageType)
	assert.Equal(t, int64(1), msg.SenderID)
}

func TestMarkReadGuardsRecipient(t *testing.T) {
	repo := newFakeMessageRepo()
	svc := NewService(repo)

	recipient := int64(2)
	msg, err := svc.Send(context.Background(), 1, &model.SendMessageRequest{Content: "hi", RecipientID: &recipient})
	require.NoError(t, err)

	// A non-recipient cannot flip the flag.
	require.NoError(t, svc.MarkRead(context.Background(), msg.ID, 99))
	assert.False(t, repo.messages[0].IsRead)

	require.NoError(t, svc.MarkRead(context.Background(), msg.ID, recipient))
	assert.True(t, repo.messages[0].IsRead)
}
