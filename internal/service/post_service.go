package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/berkaygencdogan/camp-track-backend/internal/ledger"
	"github.com/berkaygencdogan/camp-track-backend/pkg/api"
	"github.com/berkaygencdogan/camp-track-backend/pkg/api/apiconnect"
)

var _ apiconnect.PostService = (*PostService)(nil)

// PostService implements the Connect PostService.
type PostService struct {
	posts *ledger.Posts
}

// NewPostService creates a PostService.
func NewPostService(posts *ledger.Posts) *PostService {
	return &PostService{posts: posts}
}

// CreatePost publishes a post as the caller.
func (s *PostService) CreatePost(ctx context.Context, req *connect.Request[api.CreatePostRequest]) (*connect.Response[api.PostResponse], error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreatePost request received", "medias_count", len(req.Msg.Medias))

	post, err := s.posts.CreatePost(ctx, uid, ledger.PostInput{
		Caption: req.Msg.Caption,
		Medias:  req.Msg.Medias,
	})
	if err != nil {
		return nil, failed(ctx, "CreatePost", err)
	}

	slog.Info("Post created", "post_id", post.ID)
	return connect.NewResponse(&api.PostResponse{Post: post}), nil
}

func (s *PostService) GetPost(ctx context.Context, req *connect.Request[api.GetPostRequest]) (*connect.Response[api.PostResponse], error) {
	post, err := s.posts.GetPost(ctx, req.Msg.PostID)
	if err != nil {
		return nil, failed(ctx, "GetPost", err, "post_id", req.Msg.PostID)
	}
	return connect.NewResponse(&api.PostResponse{Post: post}), nil
}

// ListPosts returns a user's posts, the caller's by default.
func (s *PostService) ListPosts(ctx context.Context, req *connect.Request[api.ListPostsRequest]) (*connect.Response[api.ListPostsResponse], error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.UserID != "" {
		uid = req.Msg.UserID
	}

	posts, err := s.posts.ListPosts(ctx, uid)
	if err != nil {
		return nil, failed(ctx, "ListPosts", err, "user_id", uid)
	}
	return connect.NewResponse(&api.ListPostsResponse{Posts: posts}), nil
}

func (s *PostService) EditPost(ctx context.Context, req *connect.Request[api.EditPostRequest]) (*connect.Response[api.PostResponse], error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("EditPost request received", "post_id", req.Msg.PostID)

	post, err := s.posts.EditPost(ctx, req.Msg.PostID, uid, ledger.PostEdit{
		Caption: req.Msg.Caption,
		Medias:  req.Msg.Medias,
	})
	if err != nil {
		return nil, failed(ctx, "EditPost", err, "post_id", req.Msg.PostID)
	}
	return connect.NewResponse(&api.PostResponse{Post: post}), nil
}

func (s *PostService) RemoveMedia(ctx context.Context, req *connect.Request[api.RemoveMediaRequest]) (*connect.Response[api.RemoveMediaResponse], error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	medias, err := s.posts.RemoveMedia(ctx, req.Msg.PostID, uid, req.Msg.URL)
	if err != nil {
		return nil, failed(ctx, "RemoveMedia", err, "post_id", req.Msg.PostID)
	}
	return connect.NewResponse(&api.RemoveMediaResponse{Medias: medias}), nil
}

func (s *PostService) DeletePost(ctx context.Context, req *connect.Request[api.DeletePostRequest]) (*connect.Response[api.Empty], error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("DeletePost request received", "post_id", req.Msg.PostID)

	if err := s.posts.DeletePost(ctx, req.Msg.PostID, uid); err != nil {
		return nil, failed(ctx, "DeletePost", err, "post_id", req.Msg.PostID)
	}
	return connect.NewResponse(&api.Empty{}), nil
}

// LikePost toggles the caller's like.
func (s *PostService) LikePost(ctx context.Context, req *connect.Request[api.LikePostRequest]) (*connect.Response[api.LikePostResponse], error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.ToggleLike(ctx, req.Msg.PostID, uid)
	if err != nil {
		return nil, failed(ctx, "LikePost", err, "post_id", req.Msg.PostID)
	}
	return connect.NewResponse(&api.LikePostResponse{LikedBy: post.LikedBy, Likes: post.Likes}), nil
}

func (s *PostService) AddComment(ctx context.Context, req *connect.Request[api.AddPostCommentRequest]) (*connect.Response[api.PostCommentResponse], error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("AddPostComment request received", "post_id", req.Msg.PostID)

	comment, err := s.posts.AddComment(ctx, req.Msg.PostID, uid, req.Msg.Text)
	if err != nil {
		return nil, failed(ctx, "AddPostComment", err, "post_id", req.Msg.PostID)
	}
	return connect.NewResponse(&api.PostCommentResponse{Comment: comment}), nil
}

func (s *PostService) ListComments(ctx context.Context, req *connect.Request[api.ListPostCommentsRequest]) (*connect.Response[api.ListPostCommentsResponse], error) {
	comments, err := s.posts.ListComments(ctx, req.Msg.PostID)
	if err != nil {
		return nil, failed(ctx, "ListPostComments", err, "post_id", req.Msg.PostID)
	}
	return connect.NewResponse(&api.ListPostCommentsResponse{Comments: comments}), nil
}

func (s *PostService) DeleteComment(ctx context.Context, req *connect.Request[api.DeletePostCommentRequest]) (*connect.Response[api.Empty], error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.posts.DeleteComment(ctx, req.Msg.PostID, req.Msg.CommentID, uid); err != nil {
		return nil, failed(ctx, "DeletePostComment", err, "post_id", req.Msg.PostID, "comment_id", req.Msg.CommentID)
	}
	return connect.NewResponse(&api.Empty{}), nil
}
