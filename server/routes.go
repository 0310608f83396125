package server

import "net/http"

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())

	// Credential & session endpoints
	s.RegisterRouteHandler("POST "+RouteRegister, ChainMiddleware(s.RegisterHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteValidateSecret, ChainMiddleware(s.ValidateSecretHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteMe, ChainMiddleware(s.MeHandler(), s.AuthedAPIMiddleware()...))

	// Project-management endpoints (owner-scoped)
	s.RegisterRouteHandler("GET "+RouteProjects, ChainMiddleware(s.ListProjectsHandler(), s.AuthedAPIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteProjects, ChainMiddleware(s.CreateProjectHandler(), s.AuthedAPIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteProjectByID, ChainMiddleware(s.GetProjectHandler(), s.AuthedAPIMiddleware()...))
	s.RegisterRouteHandler("PUT "+RouteProjectByID, ChainMiddleware(s.UpdateProjectHandler(), s.AuthedAPIMiddleware()...))
	s.RegisterRouteHandler("DELETE "+RouteProjectByID, ChainMiddleware(s.DeleteProjectHandler(), s.AuthedAPIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteProjectTasks, ChainMiddleware(s.ListTasksHandler(), s.AuthedAPIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteProjectTasks, ChainMiddleware(s.CreateTaskHandler(), s.AuthedAPIMiddleware()...))
	s.RegisterRouteHandler("PUT "+RouteTaskByID, ChainMiddleware(s.UpdateTaskHandler(), s.AuthedAPIMiddleware()...))
	s.RegisterRouteHandler("DELETE "+RouteTaskByID, ChainMiddleware(s.DeleteTaskHandler(), s.AuthedAPIMiddleware()...))

	// Storefront endpoints: catalog reads are public, everything else needs a token
	s.RegisterRouteHandler("GET "+RouteProducts, ChainMiddleware(s.ListProductsHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteProductByID, ChainMiddleware(s.GetProductHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteProducts, ChainMiddleware(s.CreateProductHandler(), s.AuthedAPIMiddleware()...))
	s.RegisterRouteHandler("PUT "+RouteProductByID, ChainMiddleware(s.UpdateProductHandler(), s.AuthedAPIMiddleware()...))
	s.RegisterRouteHandler("DELETE "+RouteProductByID, ChainMiddleware(s.DeleteProductHandler(), s.AuthedAPIMiddleware()...))

	s.RegisterRouteHandler("POST "+RouteOrders, ChainMiddleware(s.PlaceOrderHandler(), s.AuthedAPIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteOrders, ChainMiddleware(s.ListOrdersHandler(), s.AuthedAPIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteOrderByID, ChainMiddleware(s.GetOrderHandler(), s.AuthedAPIMiddleware()...))
}

// HealthHandler reports liveness
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
