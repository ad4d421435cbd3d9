// Package options provides Container, a base type for "options objects":
// structs whose fields are populated from an associative collection,
// accessed through convention-named getter and setter methods, and
// exported back to an ordered collection.
//
// A concrete options type embeds Container and declares accessors named
// after its keys. The key "listen_addr" (or "listen addr") maps to the
// methods SetListenAddr and GetListenAddr:
//
//	type ServerOptions struct {
//	    options.Container
//	    listenAddr string
//	}
//
//	func (o *ServerOptions) SetListenAddr(v string) { o.listenAddr = v }
//	func (o *ServerOptions) GetListenAddr() string  { return o.listenAddr }
//
//	opts, err := options.New[ServerOptions](map[string]any{"listen_addr": ":8080"})
//
// Accessors are discovered by reflection once per type and cached, so no
// registration is needed. Method lookup is case-insensitive, which lets
// "http_port" reach SetHTTPPort.
//
// In strict mode (the default) setting a key without a setter is an error;
// with strict mode off it is silently ignored. Reading a key without a
// getter is always an error.
//
// A Container performs no internal synchronization. Callers sharing an
// instance across goroutines must guard it themselves.
package options
