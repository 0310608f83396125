package server

const (
	RouteRegister       = "/api/register"
	RouteLogin          = "/api/login"
	RouteValidateSecret = "/api/password/validate"
	RouteMe             = "/api/me"
	RouteProjects       = "/api/projects"
	RouteProjectByID    = "/api/projects/{id}"
	RouteProjectTasks   = "/api/projects/{id}/tasks"
	RouteTaskByID       = "/api/tasks/{id}"
	RouteProducts       = "/api/products"
	RouteProductByID    = "/api/products/{id}"
	RouteOrders         = "/api/orders"
	RouteOrderByID      = "/api/orders/{id}"
	RouteHealth         = "/healthz"
)
