package api

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(deps Dependencies) *routeHandlers {
	return &routeHandlers{
		projectHandler: newProjectHandler(deps.Projects, deps.Assets),
		messageHandler: newMessageHandler(deps.Messages, deps.Notifier),
		githubHandler:  newGithubHandler(deps.Stats),
		authHandler:    newAuthHandler(deps.Auth),
		uploadHandler:  newUploadHandler(deps.Projects, deps.Assets),
	}
}
