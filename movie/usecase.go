package movie

import "context"

type Service interface {
	ListMovies(ctx context.Context, page, perPage int) (Page, error)
	SearchMovies(ctx context.Context, filter SearchFilter) (Page, error)
	GetMovieByID(ctx context.Context, id int64) (Movie, error)
	GetMovieByName(ctx context.Context, name string) (Movie, error)
	CreateMovie(ctx context.Context, m Movie, genres []string) (Movie, error)
	UpdateMovieByID(ctx context.Context, id int64, patch UpdatePatch) (Movie, error)
	UpdateMovieByName(ctx context.Context, name string, patch UpdatePatch) (Movie, error)
	DeleteMovieByID(ctx context.Context, id int64) error
	DeleteMovieByName(ctx context.Context, name string) error
}

type Repository interface {
	Search(ctx context.Context, filter SearchFilter) (Page, error)
	GetByID(ctx context.Context, id int64) (Movie, error)
	GetByName(ctx context.Context, name string) (Movie, error)
	Create(ctx context.Context, m Movie, genres []string) (Movie, error)
	UpdateByID(ctx context.Context, id int64, patch UpdatePatch) (Movie, error)
	UpdateByName(ctx context.Context, name string, patch UpdatePatch) (Movie, error)
	DeleteByID(ctx context.Context, id int64) error
	DeleteByName(ctx context.Context, name string) error
}

type Usecase struct {
	r Repository
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{r: r}
}

func (uc *Usecase) ListMovies(ctx context.Context, page, perPage int) (Page, error) {
	return uc.SearchMovies(ctx, SearchFilter{Page: page, PerPage: perPage})
}

func (uc *Usecase) SearchMovies(ctx context.Context, filter SearchFilter) (Page, error) {
	filter.Normalize()
	result, err := uc.r.Search(ctx, filter)
	if err != nil {
		return Page{}, err
	}
	if result.Total == 0 {
		return Page{}, ErrNoMovies
	}
	return result, nil
}

func (uc *Usecase) GetMovieByID(ctx context.Context, id int64) (Movie, error) {
	return uc.r.GetByID(ctx, id)
}

func (uc *Usecase) GetMovieByName(ctx context.Context, name string) (Movie, error) {
	return uc.r.GetByName(ctx, name)
}

func (uc *Usecase) CreateMovie(ctx context.Context, m Movie, genres []string) (Movie, error) {
	if err := m.Validate(); err != nil {
		return Movie{}, err
	}
	return uc.r.Create(ctx, m, genres)
}

func (uc *Usecase) UpdateMovieByID(ctx context.Context, id int64, patch UpdatePatch) (Movie, error) {
	if patch.Empty() {
		return uc.r.GetByID(ctx, id)
	}
	return uc.r.UpdateByID(ctx, id, patch)
}

func (uc *Usecase) UpdateMovieByName(ctx context.Context, name string, patch UpdatePatch) (Movie, error) {
	if patch.Empty() {
		return uc.r.GetByName(ctx, name)
	}
	return uc.r.UpdateByName(ctx, name, patch)
}

func (uc *Usecase) DeleteMovieByID(ctx context.Context, id int64) error {
	return uc.r.DeleteByID(ctx, id)
}

func (uc *Usecase) DeleteMovieByName(ctx context.Context, name string) error {
	return uc.r.DeleteByName(ctx, name)
}
