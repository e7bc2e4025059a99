package contracts

import "github.com/julienschmidt/httprouter"

// Handler is an HTTP feature that mounts its routes on a shared router.
type Handler interface {
	RegisterRoutes(*httprouter.Router)
}
