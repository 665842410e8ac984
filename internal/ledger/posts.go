package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"

	"github.com/berkaygencdogan/camp-track-backend/internal/models"
	"github.com/berkaygencdogan/camp-track-backend/internal/storage"
)

// Posts owns user posts, their comments and likes.
//
// Each post is its own document. LikedBy and Likes live on the post and are
// only changed together inside its transaction.
type Posts struct {
	base
	users *Directory
}

// NewPosts creates a Posts ledger.
func NewPosts(store storage.Store, users *Directory, opts ...Option) *Posts {
	return &Posts{base: newBase(store, opts), users: users}
}

// PostInput describes a new post.
type PostInput struct {
	Caption string             `json:"caption" validate:"max=2200"`
	Medias  []models.PostMedia `json:"medias" validate:"required,min=1,max=10"`
}

// PostEdit changes a post. Nil fields are left as they are.
type PostEdit struct {
	Caption *string
	Medias  []models.PostMedia
}

// CreatePost stores a post by uid with the author's current name and avatar.
func (p *Posts) CreatePost(ctx context.Context, uid string, in PostInput) (*models.Post, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if err := validateMedias(in.Medias); err != nil {
		return nil, err
	}
	author, err := p.users.GetUser(ctx, uid)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		ID:         p.newID(),
		UserID:     uid,
		Username:   author.DisplayName(),
		UserAvatar: author.Avatar,
		Caption:    in.Caption,
		Medias:     in.Medias,
		LikedBy:    []string{},
		CreatedAt:  p.nowMillis(),
	}
	if err := p.put(ctx, models.CollectionPosts, post.ID, post); err != nil {
		return nil, err
	}

	slog.Info("Post created", "post_id", post.ID, "user_id", uid, "medias", len(post.Medias))
	return post, nil
}

func validateMedias(medias []models.PostMedia) error {
	for _, m := range medias {
		if m.URL == "" {
			return invalid("medias", "every media needs a url")
		}
	}
	return nil
}

// GetPost returns one post.
func (p *Posts) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	return get[models.Post](ctx, &p.base, models.CollectionPosts, postID)
}

// ListPosts returns uid's posts, newest first.
func (p *Posts) ListPosts(ctx context.Context, uid string) ([]models.Post, error) {
	posts, err := query[models.Post](ctx, &p.base, models.CollectionPosts,
		storage.Where("userId", storage.OpEqual, uid),
	)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt > posts[j].CreatedAt
	})
	return posts, nil
}

// EditPost updates the caption or medias of a post. Author only.
func (p *Posts) EditPost(ctx context.Context, postID, actingUID string, edit PostEdit) (*models.Post, error) {
	if edit.Caption == nil && edit.Medias == nil {
		return nil, invalid("caption", "nothing to update")
	}
	if edit.Medias != nil {
		if len(edit.Medias) == 0 {
			return nil, invalid("medias", "a post needs at least one media")
		}
		if err := validateMedias(edit.Medias); err != nil {
			return nil, err
		}
	}

	return mutate(ctx, &p.base, models.CollectionPosts, postID, func(post *models.Post) (bool, error) {
		if post.UserID != actingUID {
			return false, fmt.Errorf("only the author can edit post %q: %w", postID, ErrForbidden)
		}
		if edit.Caption != nil {
			post.Caption = *edit.Caption
		}
		if edit.Medias != nil {
			post.Medias = edit.Medias
		}
		post.UpdatedAt = p.nowMillis()
		return true, nil
	})
}

// RemoveMedia drops one media from a post by URL and returns what is left.
// Removing the last media is rejected; delete the post instead.
func (p *Posts) RemoveMedia(ctx context.Context, postID, actingUID, url string) ([]models.PostMedia, error) {
	if url == "" {
		return nil, invalid("url", "is required")
	}
	post, err := mutate(ctx, &p.base, models.CollectionPosts, postID, func(post *models.Post) (bool, error) {
		if post.UserID != actingUID {
			return false, fmt.Errorf("only the author can edit post %q: %w", postID, ErrForbidden)
		}
		kept := slices.DeleteFunc(slices.Clone(post.Medias), func(m models.PostMedia) bool {
			return m.URL == url
		})
		if len(kept) == len(post.Medias) {
			return false, nil
		}
		if len(kept) == 0 {
			return false, invalid("medias", "a post needs at least one media")
		}
		post.Medias = kept
		post.UpdatedAt = p.nowMillis()
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return post.Medias, nil
}

// DeletePost deletes a post and then its comments. Author only. Comments
// that fail to delete are logged; they are unreachable without the post.
func (p *Posts) DeletePost(ctx context.Context, postID, actingUID string) error {
	post, err := p.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != actingUID {
		return fmt.Errorf("only the author can delete post %q: %w", postID, ErrForbidden)
	}
	if err := p.delete(ctx, models.CollectionPosts, postID); err != nil {
		return err
	}

	comments, err := p.comments(ctx, postID)
	if err != nil {
		slog.Warn("Post comments not cleared", "post_id", postID, "error", err)
	}
	for _, c := range comments {
		if err := p.delete(ctx, models.CollectionPostComments, c.ID); err != nil {
			slog.Warn("Post comment not deleted", "post_id", postID, "comment_id", c.ID, "error", err)
		}
	}

	slog.Info("Post deleted", "post_id", postID, "comments", len(comments))
	return nil
}

// ToggleLike likes the post for uid, or unlikes it if uid already did, and
// returns the resulting post.
func (p *Posts) ToggleLike(ctx context.Context, postID, uid string) (*models.Post, error) {
	if uid == "" {
		return nil, invalid("userId", "is required")
	}
	post, err := mutate(ctx, &p.base, models.CollectionPosts, postID, func(post *models.Post) (bool, error) {
		if liked, removed := without(post.LikedBy, uid); removed {
			post.LikedBy = liked
		} else {
			post.LikedBy, _ = appendUnique(post.LikedBy, uid)
		}
		post.Likes = len(post.LikedBy)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	slog.Debug("Post like toggled", "post_id", postID, "user_id", uid, "likes", post.Likes)
	return post, nil
}

// AddComment comments on a post as uid.
func (p *Posts) AddComment(ctx context.Context, postID, uid, text string) (*models.PostComment, error) {
	if err := validateStruct(struct {
		PostID string `json:"postId" validate:"required"`
		Text   string `json:"text" validate:"required,max=1000"`
	}{postID, text}); err != nil {
		return nil, err
	}
	if _, err := p.GetPost(ctx, postID); err != nil {
		return nil, err
	}

	comment := &models.PostComment{
		ID:        p.newID(),
		PostID:    postID,
		UserID:    uid,
		Text:      text,
		CreatedAt: p.nowMillis(),
	}
	if err := p.put(ctx, models.CollectionPostComments, comment.ID, comment); err != nil {
		return nil, err
	}
	slog.Info("Post comment added", "post_id", postID, "comment_id", comment.ID, "user_id", uid)
	return comment, nil
}

// ListComments returns a post's comments, oldest first.
func (p *Posts) ListComments(ctx context.Context, postID string) ([]models.PostComment, error) {
	if _, err := p.GetPost(ctx, postID); err != nil {
		return nil, err
	}
	return p.comments(ctx, postID)
}

func (p *Posts) comments(ctx context.Context, postID string) ([]models.PostComment, error) {
	comments, err := query[models.PostComment](ctx, &p.base, models.CollectionPostComments,
		storage.Where("postId", storage.OpEqual, postID),
	)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt < comments[j].CreatedAt
	})
	return comments, nil
}

// DeleteComment deletes a post comment. The comment's author and the post's
// author may delete it. Deleting an absent comment succeeds.
func (p *Posts) DeleteComment(ctx context.Context, postID, commentID, actingUID string) error {
	comment, err := get[models.PostComment](ctx, &p.base, models.CollectionPostComments, commentID)
	if KindOf(err) == KindNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	if comment.PostID != postID {
		return notFound("comment", commentID)
	}
	if comment.UserID != actingUID {
		post, err := p.GetPost(ctx, postID)
		if err != nil {
			return err
		}
		if post.UserID != actingUID {
			return fmt.Errorf("comment %q belongs to another user: %w", commentID, ErrForbidden)
		}
	}
	if err := p.delete(ctx, models.CollectionPostComments, commentID); err != nil {
		return err
	}
	slog.Info("Post comment deleted", "post_id", postID, "comment_id", commentID)
	return nil
}
