// Package notification collects user-facing messages during a single request
// and renders them for the response.
//
// Messages live in named containers (bags). Each bag has a list of registered
// types, a default format and per-type formats. A format is a template with
// two placeholders, :type and :message. Messages of unregistered types are
// dropped silently.
//
// # Instant and flash messages
//
// An instant message is stored in the bag and rendered in the same request.
// A flash message is not stored: the bag publishes a "notification.flash"
// event and the flash middleware (package flash) persists it for the next
// request. Stored messages publish a "notification.added" event.
//
//	m := notification.New(notification.DefaultConfig())
//	m.Default().Instant("success", "Profile saved")
//	m.Default().Flash("info", "Check your inbox")
//	html := m.Default().ShowAll()
//
// # Ordering
//
// Messages may request an explicit position. A message added at an occupied
// position pushes the occupant (and everything it collides with) one slot
// down. Unpositioned messages fill the free slots in insertion order.
//
// # Dynamic calls
//
// Bag.Call resolves operation names derived from the registered types, so
// templates and scripting layers can address a type by name:
//
//	bag.Call("success", "Saved")              // flash
//	bag.Call("successInstant", "Saved")       // instant
//	bag.Call("showSuccess", "<p>:message</p>") // render
//	bag.Call("clearSuccess")                   // clear
//
// # Events
//
// A Dispatcher receives every accepted message. Use MultiDispatcher to fan out
// and BroadcastDispatcher to stream added messages to live subscribers.
package notification
