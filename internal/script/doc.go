// Package script lets Lua scripts drive an event Dispatcher.
//
// A State wraps a gopher-lua runtime with only the base, table, string and
// math libraries opened, and installs a global "events" table bound to a
// Dispatcher:
//
//	events.register("order.created")
//
//	events.before(function(name, ...)
//	    return "audit:" .. name
//	end)
//
//	local id = events.on("order.created", function(order)
//	    return order.id
//	end, 10)
//
//	events.once("order.created", function(order)
//	    return "first order"
//	end)
//
//	local res = events.use("order.created", { id = "o-1" })
//	-- res.before, res.event, res.after are arrays of returned values
//
//	events.off("order.created", id)
//	print(table.concat(events.list("order.*"), ","))
//
//	for _, l in ipairs(events.listeners("order.created")) do
//	    print(l.id, l.priority)
//	end
//
// Lua functions attached with on/once/before/after become ordinary event
// handlers and run whenever the event is dispatched, from Lua or from Go.
// A Lua error raised in a handler is returned as the handler's error, and a
// failed dispatch started with events.use raises a Lua error.
//
// # Thread Safety
//
// gopher-lua's LState is not goroutine-safe. A State and every event that
// has Lua handlers attached must be used from a single goroutine.
package script
