package favorite

import "moviecatalog/errs"

var (
	ErrAlreadyFavorite = errs.Errorf(errs.ECONFLICT, "movie is already in favorites")
	ErrNotFavorite     = errs.Errorf(errs.ENOTFOUND, "movie is not in favorites")
)
