// Package http provides Laravel-compatible request and response helpers.
//
// # Request
//
//	req := gohttp.NewRequest(r)
//
//	// Submitted values, JSON object or form body
//	values, err := req.Values()                         // map[string]string
//	fields, err := req.Fields(validation.ContactFields) // ordered []validation.Field
//
//	// Input retrieval
//	page := req.Query("visible", "6")
//	name := req.Input("name")
//
//	// Client details
//	req.UserAgent()
//	req.IP()           // respects RealIP middleware
//	req.Cookie("visitor")
//	req.PrefersDark()  // Sec-CH-Prefers-Color-Scheme: dark
//	req.IsJSON()
//
// # Response
//
//	res := gohttp.NewResponse(w)
//
//	res.JSON(200, data)            // raw JSON with status
//	res.Success(data)              // 200 {"data": ...}
//	res.Created(data)              // 201 {"data": ...}
//	res.Error(502, "msg")          // {"message": "msg"}
//	res.NotFound()                 // 404 {"message": "Not found."}
//	res.ServerError()              // 500 {"message": "Server Error."}
//	res.ValidationError(bag)       // 422 {"errors": {"field": ["msg"]}}
//	res.ValidationFailed(result)   // 422 {"errors": {...}, "first_invalid": "field"}
//	res.RedirectTo("/")            // 303
//	res.RedirectBack(r, "/")       // 303 to Referer
//
// # ViewEngine
//
//	engine := gohttp.NewViewEngine("./views", ".html", "layout")
//	engine.View(w, http.StatusOK, "index", page)
package http
