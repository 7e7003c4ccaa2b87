package genre

import "context"

type Repository interface {
	List(context context.Context) ([]*Genre, error)
	FindByID(context context.Context, id string) (*Genre, error)
	FindBySlug(context context.Context, slug string) (*Genre, error)
	Create(context context.Context, genre *Genre) error
	Update(context context.Context, genre *Genre) error
	Delete(context context.Context, id string) error
}
