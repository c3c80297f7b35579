package store

import (
	"context"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/attendance-backend/internal/errs"
	"github.com/GregMSThompson/attendance-backend/internal/models"
)

type userStore struct {
	Client     *firestore.Client
	Collection *firestore.CollectionRef
	Emails     *firestore.CollectionRef
}

func NewUserStore(client *firestore.Client) *userStore {
	return &userStore{
		Client:     client,
		Collection: client.Collection("users"),
		Emails:     client.Collection("user_emails"),
	}
}

// emailKey normalises an address into a document ID for the uniqueness index.
func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser writes the user document and its email index entry atomically.
// Either one already existing fails the whole write with AlreadyExistsError.
func (us *userStore) CreateUser(ctx context.Context, user *models.User) error {
	userRef := us.Collection.Doc(user.UID)
	emailRef := us.Emails.Doc(emailKey(user.Email))
	if userRef == nil || emailRef == nil {
		return errs.NewValidationError("uid and email are required")
	}

	err := us.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		for _, ref := range []*firestore.DocumentRef{userRef, emailRef} {
			_, err := tx.Get(ref)
			if err == nil {
				return errs.NewAlreadyExistsError("User already exists")
			}
			if status.Code(err) != codes.NotFound {
				return err
			}
		}
		if err := tx.Create(userRef, user); err != nil {
			return err
		}
		return tx.Create(emailRef, map[string]any{
			"uid":       user.UID,
			"createdAt": user.CreatedAt,
		})
	})
	switch e := err.(type) {
	case nil:
		return nil
	case *errs.AlreadyExistsError:
		return e
	}
	if status.Code(err) == codes.AlreadyExists {
		return errs.NewAlreadyExistsError("User already exists")
	}
	return errs.NewDatabaseError("create", "failed to create user", err)
}

func (us *userStore) GetUser(ctx context.Context, uid string) (*models.User, error) {
	ref := us.Collection.Doc(uid)
	if ref == nil {
		return nil, errs.NewNotFoundError("User not found")
	}

	doc, err := ref.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("User not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get user", err)
	}
	var user models.User
	if err := doc.DataTo(&user); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse user data", err)
	}
	return &user, nil
}

// GetUsers batch-reads users by uid. Missing uids are absent from the map.
func (us *userStore) GetUsers(ctx context.Context, uids []string) (map[string]*models.User, error) {
	out := make(map[string]*models.User, len(uids))
	refs := make([]*firestore.DocumentRef, 0, len(uids))
	seen := make(map[string]bool, len(uids))
	for _, uid := range uids {
		if seen[uid] {
			continue
		}
		seen[uid] = true
		if ref := us.Collection.Doc(uid); ref != nil {
			refs = append(refs, ref)
		}
	}
	if len(refs) == 0 {
		return out, nil
	}

	docs, err := us.Client.GetAll(ctx, refs)
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to get users", err)
	}
	for _, doc := range docs {
		if !doc.Exists() {
			continue
		}
		var user models.User
		if err := doc.DataTo(&user); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse user data", err)
		}
		out[user.UID] = &user
	}
	return out, nil
}

func (us *userStore) ListByRole(ctx context.Context, role models.Role) ([]*models.User, error) {
	docs, err := us.Collection.Where("role", "==", string(role)).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list users", err)
	}
	users := make([]*models.User, 0, len(docs))
	for _, d := range docs {
		var u models.User
		if err := d.DataTo(&u); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse user data", err)
		}
		users = append(users, &u)
	}
	return users, nil
}

func (us *userStore) SetRole(ctx context.Context, uid string, role models.Role) error {
	ref := us.Collection.Doc(uid)
	if ref == nil {
		return errs.NewNotFoundError("User not found")
	}

	_, err := ref.Update(ctx, []firestore.Update{
		{Path: "role", Value: string(role)},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errs.NewNotFoundError("User not found")
		}
		return errs.NewDatabaseError("update", "failed to update user role", err)
	}
	return nil
}
