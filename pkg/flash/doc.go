// Package flash carries flashed notifications from one request to the next.
//
// Middleware gives every request a notification.Manager. Messages flashed on
// it are collected and saved to a Store when the response header is written;
// on the next request they are loaded (once) and restored as instant
// messages in their original containers.
//
//	store := flash.NewCookieStore(cookies, cfg.StoreOptions()...)
//	r.Use(flash.Middleware(store, notificationConfig, flash.WithLogger(log)))
//
//	func save(w http.ResponseWriter, r *http.Request) {
//		notification.MustFromContext(r.Context()).Default().Flash("success", "Saved")
//		http.Redirect(w, r, "/", http.StatusSeeOther)
//	}
//
// Three stores are provided: CookieStore (encrypted cookie), RedisStore
// (payload in Redis, signed id cookie) and MemoryStore (single process).
package flash
