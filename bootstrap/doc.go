// Package bootstrap runs the service lifecycle: typed config, component
// registration, start and stop hooks, a startup summary, and graceful
// shutdown on SIGINT/SIGTERM.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.RegisterComponent(storeComponent)
//	app.RegisterComponent(server.NewComponent(srv))
//	err = app.Run(ctx)
//
// Run blocks until a signal arrives, which suits the HTTP transport.
// RunTask runs a finite function instead, which suits stdio: the task
// returns when the client closes stdin.
package bootstrap
