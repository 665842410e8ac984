package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/berkaygencdogan/camp-track-backend/pkg/api"
)

// PostServiceName is the fully-qualified name of the PostService.
const PostServiceName = "camptrack.v1.PostService"

// Procedure paths of the PostService.
const (
	PostServiceCreatePostProcedure    = "/" + PostServiceName + "/CreatePost"
	PostServiceGetPostProcedure       = "/" + PostServiceName + "/GetPost"
	PostServiceListPostsProcedure     = "/" + PostServiceName + "/ListPosts"
	PostServiceEditPostProcedure      = "/" + PostServiceName + "/EditPost"
	PostServiceRemoveMediaProcedure   = "/" + PostServiceName + "/RemoveMedia"
	PostServiceDeletePostProcedure    = "/" + PostServiceName + "/DeletePost"
	PostServiceLikePostProcedure      = "/" + PostServiceName + "/LikePost"
	PostServiceAddCommentProcedure    = "/" + PostServiceName + "/AddComment"
	PostServiceListCommentsProcedure  = "/" + PostServiceName + "/ListComments"
	PostServiceDeleteCommentProcedure = "/" + PostServiceName + "/DeleteComment"
)

// PostService manages user posts, their likes and comments.
type PostService interface {
	CreatePost(context.Context, *connect.Request[api.CreatePostRequest]) (*connect.Response[api.PostResponse], error)
	GetPost(context.Context, *connect.Request[api.GetPostRequest]) (*connect.Response[api.PostResponse], error)
	ListPosts(context.Context, *connect.Request[api.ListPostsRequest]) (*connect.Response[api.ListPostsResponse], error)
	EditPost(context.Context, *connect.Request[api.EditPostRequest]) (*connect.Response[api.PostResponse], error)
	RemoveMedia(context.Context, *connect.Request[api.RemoveMediaRequest]) (*connect.Response[api.RemoveMediaResponse], error)
	DeletePost(context.Context, *connect.Request[api.DeletePostRequest]) (*connect.Response[api.Empty], error)
	LikePost(context.Context, *connect.Request[api.LikePostRequest]) (*connect.Response[api.LikePostResponse], error)
	AddComment(context.Context, *connect.Request[api.AddPostCommentRequest]) (*connect.Response[api.PostCommentResponse], error)
	ListComments(context.Context, *connect.Request[api.ListPostCommentsRequest]) (*connect.Response[api.ListPostCommentsResponse], error)
	DeleteComment(context.Context, *connect.Request[api.DeletePostCommentRequest]) (*connect.Response[api.Empty], error)
}

// NewPostServiceHandler builds an HTTP handler for svc and returns the path to
// mount it on.
func NewPostServiceHandler(svc PostService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return serve(PostServiceName,
		unary(PostServiceCreatePostProcedure, svc.CreatePost, opts),
		unary(PostServiceGetPostProcedure, svc.GetPost, opts),
		unary(PostServiceListPostsProcedure, svc.ListPosts, opts),
		unary(PostServiceEditPostProcedure, svc.EditPost, opts),
		unary(PostServiceRemoveMediaProcedure, svc.RemoveMedia, opts),
		unary(PostServiceDeletePostProcedure, svc.DeletePost, opts),
		unary(PostServiceLikePostProcedure, svc.LikePost, opts),
		unary(PostServiceAddCommentProcedure, svc.AddComment, opts),
		unary(PostServiceListCommentsProcedure, svc.ListComments, opts),
		unary(PostServiceDeleteCommentProcedure, svc.DeleteComment, opts),
	)
}

// NewPostServiceClient returns a client for the PostService at baseURL.
func NewPostServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) PostService {
	baseURL = trimBaseURL(baseURL)
	opts = clientOptions(opts)
	return &postServiceClient{
		createPost:    connect.NewClient[api.CreatePostRequest, api.PostResponse](httpClient, baseURL+PostServiceCreatePostProcedure, opts...),
		getPost:       connect.NewClient[api.GetPostRequest, api.PostResponse](httpClient, baseURL+PostServiceGetPostProcedure, opts...),
		listPosts:     connect.NewClient[api.ListPostsRequest, api.ListPostsResponse](httpClient, baseURL+PostServiceListPostsProcedure, opts...),
		editPost:      connect.NewClient[api.EditPostRequest, api.PostResponse](httpClient, baseURL+PostServiceEditPostProcedure, opts...),
		removeMedia:   connect.NewClient[api.RemoveMediaRequest, api.RemoveMediaResponse](httpClient, baseURL+PostServiceRemoveMediaProcedure, opts...),
		deletePost:    connect.NewClient[api.DeletePostRequest, api.Empty](httpClient, baseURL+PostServiceDeletePostProcedure, opts...),
		likePost:      connect.NewClient[api.LikePostRequest, api.LikePostResponse](httpClient, baseURL+PostServiceLikePostProcedure, opts...),
		addComment:    connect.NewClient[api.AddPostCommentRequest, api.PostCommentResponse](httpClient, baseURL+PostServiceAddCommentProcedure, opts...),
		listComments:  connect.NewClient[api.ListPostCommentsRequest, api.ListPostCommentsResponse](httpClient, baseURL+PostServiceListCommentsProcedure, opts...),
		deleteComment: connect.NewClient[api.DeletePostCommentRequest, api.Empty](httpClient, baseURL+PostServiceDeleteCommentProcedure, opts...),
	}
}

type postServiceClient struct {
	createPost    *connect.Client[api.CreatePostRequest, api.PostResponse]
	getPost       *connect.Client[api.GetPostRequest, api.PostResponse]
	listPosts     *connect.Client[api.ListPostsRequest, api.ListPostsResponse]
	editPost      *connect.Client[api.EditPostRequest, api.PostResponse]
	removeMedia   *connect.Client[api.RemoveMediaRequest, api.RemoveMediaResponse]
	deletePost    *connect.Client[api.DeletePostRequest, api.Empty]
	likePost      *connect.Client[api.LikePostRequest, api.LikePostResponse]
	addComment    *connect.Client[api.AddPostCommentRequest, api.PostCommentResponse]
	listComments  *connect.Client[api.ListPostCommentsRequest, api.ListPostCommentsResponse]
	deleteComment *connect.Client[api.DeletePostCommentRequest, api.Empty]
}

func (c *postServiceClient) CreatePost(ctx context.Context, req *connect.Request[api.CreatePostRequest]) (*connect.Response[api.PostResponse], error) {
	return c.createPost.CallUnary(ctx, req)
}

func (c *postServiceClient) GetPost(ctx context.Context, req *connect.Request[api.GetPostRequest]) (*connect.Response[api.PostResponse], error) {
	return c.getPost.CallUnary(ctx, req)
}

func (c *postServiceClient) ListPosts(ctx context.Context, req *connect.Request[api.ListPostsRequest]) (*connect.Response[api.ListPostsResponse], error) {
	return c.listPosts.CallUnary(ctx, req)
}

func (c *postServiceClient) EditPost(ctx context.Context, req *connect.Request[api.EditPostRequest]) (*connect.Response[api.PostResponse], error) {
	return c.editPost.CallUnary(ctx, req)
}

func (c *postServiceClient) RemoveMedia(ctx context.Context, req *connect.Request[api.RemoveMediaRequest]) (*connect.Response[api.RemoveMediaResponse], error) {
	return c.removeMedia.CallUnary(ctx, req)
}

func (c *postServiceClient) DeletePost(ctx context.Context, req *connect.Request[api.DeletePostRequest]) (*connect.Response[api.Empty], error) {
	return c.deletePost.CallUnary(ctx, req)
}

func (c *postServiceClient) LikePost(ctx context.Context, req *connect.Request[api.LikePostRequest]) (*connect.Response[api.LikePostResponse], error) {
	return c.likePost.CallUnary(ctx, req)
}

func (c *postServiceClient) AddComment(ctx context.Context, req *connect.Request[api.AddPostCommentRequest]) (*connect.Response[api.PostCommentResponse], error) {
	return c.addComment.CallUnary(ctx, req)
}

func (c *postServiceClient) ListComments(ctx context.Context, req *connect.Request[api.ListPostCommentsRequest]) (*connect.Response[api.ListPostCommentsResponse], error) {
	return c.listComments.CallUnary(ctx, req)
}

func (c *postServiceClient) DeleteComment(ctx context.Context, req *connect.Request[api.DeletePostCommentRequest]) (*connect.Response[api.Empty], error) {
	return c.deleteComment.CallUnary(ctx, req)
}
