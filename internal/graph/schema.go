package graph

import (
	"time"

	"github.com/graphql-go/graphql"

	"github.com/feedstream/feed-api/internal/api/metrics"
	"github.com/feedstream/feed-api/internal/api/middleware"
	"github.com/feedstream/feed-api/internal/core/domain"
	"github.com/feedstream/feed-api/internal/core/ports"
)

// Schema exposes the same domain operations as the REST surface through a
// single GraphQL endpoint. Resolvers read the caller identity from the
// request context placed there by the soft-auth middleware.
type Schema struct {
	auth   ports.AuthService
	posts  ports.PostService
	schema graphql.Schema
}

// NewSchema builds the executable schema over the given services.
func NewSchema(auth ports.AuthService, posts ports.PostService) (*Schema, error) {
	s := &Schema{auth: auth, posts: posts}

	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"_id":    &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"email":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"name":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"status": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"posts": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.ID))),
			},
		},
	})

	postType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Post",
		Fields: graphql.Fields{
			"_id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					post, _ := p.Source.(*domain.Post)
					if post == nil {
						return nil, nil
					}
					return post.ID, nil
				},
			},
			"title":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"content": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"imageUrl": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					post, _ := p.Source.(*domain.Post)
					if post == nil {
						return nil, nil
					}
					return post.ImageURL, nil
				},
			},
			"creator": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					post, _ := p.Source.(*domain.Post)
					if post == nil {
						return nil, nil
					}
					return post.Creator, nil
				},
			},
			"createdAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					post, _ := p.Source.(*domain.Post)
					if post == nil {
						return nil, nil
					}
					return post.CreatedAt.Format(time.RFC3339), nil
				},
			},
			"updatedAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					post, _ := p.Source.(*domain.Post)
					if post == nil {
						return nil, nil
					}
					return post.UpdatedAt.Format(time.RFC3339), nil
				},
			},
		},
	})

	authDataType := graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthData",
		Fields: graphql.Fields{
			"token":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"userId": &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		},
	})

	postPageType := graphql.NewObject(graphql.ObjectConfig{
		Name: "PostPage",
		Fields: graphql.Fields{
			"posts":      &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(postType)))},
			"totalPosts": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	userInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UserInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"name":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	postInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "PostInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"content":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"imageUrl": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"login": &graphql.Field{
				Type: graphql.NewNonNull(authDataType),
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: s.resolveLogin,
			},
			"posts": &graphql.Field{
				Type: graphql.NewNonNull(postPageType),
				Args: graphql.FieldConfigArgument{
					"page": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: s.resolvePosts,
			},
			"post": &graphql.Field{
				Type: graphql.NewNonNull(postType),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: s.resolvePost,
			},
			"user": &graphql.Field{
				Type:    graphql.NewNonNull(userType),
				Resolve: s.resolveUser,
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createUser": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: graphql.FieldConfigArgument{
					"userInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(userInputType)},
				},
				Resolve: s.resolveCreateUser,
			},
			"createPost": &graphql.Field{
				Type: graphql.NewNonNull(postType),
				Args: graphql.FieldConfigArgument{
					"postInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(postInputType)},
				},
				Resolve: s.resolveCreatePost,
			},
			"updatePost": &graphql.Field{
				Type: graphql.NewNonNull(postType),
				Args: graphql.FieldConfigArgument{
					"id":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"postInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(postInputType)},
				},
				Resolve: s.resolveUpdatePost,
			},
			"deletePost": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: s.resolveDeletePost,
			},
			"updateStatus": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: graphql.FieldConfigArgument{
					"status": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: s.resolveUpdateStatus,
			},
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
	if err != nil {
		return nil, err
	}
	s.schema = schema
	return s, nil
}

// --- resolvers ---

func (s *Schema) resolveLogin(p graphql.ResolveParams) (any, error) {
	email, _ := p.Args["email"].(string)
	password, _ := p.Args["password"].(string)

	token, user, err := s.auth.Login(p.Context, email, password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("graphql", "failure").Inc()
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("graphql", "success").Inc()
	return map[string]any{"token": token, "userId": user.ID}, nil
}

func (s *Schema) resolvePosts(p graphql.ResolveParams) (any, error) {
	if !middleware.FromContext(p.Context).IsAuth {
		return nil, domain.ErrNotAuthenticated
	}

	page := 1
	if v, ok := p.Args["page"].(int); ok {
		page = v
	}

	result, err := s.posts.ListPosts(p.Context, page)
	if err != nil {
		return nil, err
	}
	return map[string]any{"posts": result.Posts, "totalPosts": int(result.Total)}, nil
}

func (s *Schema) resolvePost(p graphql.ResolveParams) (any, error) {
	if !middleware.FromContext(p.Context).IsAuth {
		return nil, domain.ErrNotAuthenticated
	}
	id, _ := p.Args["id"].(string)
	return s.posts.GetPost(p.Context, id)
}

func (s *Schema) resolveUser(p graphql.ResolveParams) (any, error) {
	user, err := s.auth.GetUser(p.Context, middleware.FromContext(p.Context))
	if err != nil {
		return nil, err
	}
	return userPayload(user), nil
}

func (s *Schema) resolveCreateUser(p graphql.ResolveParams) (any, error) {
	input, _ := p.Args["userInput"].(map[string]any)
	email, _ := input["email"].(string)
	name, _ := input["name"].(string)
	password, _ := input["password"].(string)

	user, err := s.auth.Register(p.Context, email, name, password)
	if err != nil {
		return nil, err
	}

	metrics.UsersRegisteredTotal.WithLabelValues("graphql").Inc()
	return userPayload(user), nil
}

func (s *Schema) resolveCreatePost(p graphql.ResolveParams) (any, error) {
	input, _ := p.Args["postInput"].(map[string]any)
	imageURL, _ := input["imageUrl"].(string)
	title, _ := input["title"].(string)
	content, _ := input["content"].(string)

	return s.posts.CreatePost(p.Context, middleware.FromContext(p.Context), ports.CreatePostInput{
		Title:    title,
		Content:  content,
		ImageURL: imageURL,
	})
}

func (s *Schema) resolveUpdatePost(p graphql.ResolveParams) (any, error) {
	id, _ := p.Args["id"].(string)
	input, _ := p.Args["postInput"].(map[string]any)
	imageURL, _ := input["imageUrl"].(string)
	title, _ := input["title"].(string)
	content, _ := input["content"].(string)

	return s.posts.UpdatePost(p.Context, middleware.FromContext(p.Context), ports.UpdatePostInput{
		ID:       id,
		Title:    title,
		Content:  content,
		ImageURL: imageURL,
	})
}

func (s *Schema) resolveDeletePost(p graphql.ResolveParams) (any, error) {
	id, _ := p.Args["id"].(string)
	if err := s.posts.DeletePost(p.Context, middleware.FromContext(p.Context), id); err != nil {
		return nil, err
	}
	return true, nil
}

func (s *Schema) resolveUpdateStatus(p graphql.ResolveParams) (any, error) {
	auth := middleware.FromContext(p.Context)
	status, _ := p.Args["status"].(string)

	if err := s.auth.UpdateStatus(p.Context, auth, status); err != nil {
		return nil, err
	}

	user, err := s.auth.GetUser(p.Context, auth)
	if err != nil {
		return nil, err
	}
	return userPayload(user), nil
}

func userPayload(user *domain.User) map[string]any {
	posts := user.Posts
	if posts == nil {
		posts = []string{}
	}
	return map[string]any{
		"_id":    user.ID,
		"email":  user.Email,
		"name":   user.Name,
		"status": user.Status,
		"posts":  posts,
	}
}
