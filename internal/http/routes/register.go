package routes

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/dabloons/wattsd/internal/http/mw"
)

// Register registers all API routes with the given Huma API instance.
// Pass real handler implementations for the main server, or stub implementations
// for OpenAPI generation.
func Register(api huma.API, h *Handlers) {
	// --- Health ---
	mw.Get(api, "/api/v1/health", h.HealthCheck,
		mw.WithTags("Health"),
		mw.WithSummary("Health check"),
		mw.WithDescription("Returns service health status."),
		mw.WithOperationID("healthCheck"))

	mw.HiddenGet(api, "/healthz", h.HealthCheck)

	// --- Version ---
	mw.Get(api, "/api/v1/version", h.VersionCheck,
		mw.WithTags("Version"),
		mw.WithSummary("Daemon version"),
		mw.WithDescription("Returns the running daemon's version, commit, and build date."),
		mw.WithOperationID("getVersion"))

	// --- Lights ---
	mw.Get(api, "/api/v1/lights", h.Light.ListLights,
		mw.WithTags("Lights"),
		mw.WithSummary("List all lights"),
		mw.WithDescription("Returns all known lights across every vendor integration."),
		mw.WithOperationID("listLights"))

	mw.Get(api, "/api/v1/lights/{id}", h.Light.GetLight,
		mw.WithTags("Lights"),
		mw.WithSummary("Get a light"),
		mw.WithOperationID("getLight"))

	mw.Put(api, "/api/v1/lights/{id}/state", h.Light.SetLightState,
		mw.WithTags("Lights"),
		mw.WithSummary("Set light state"),
		mw.WithDescription("Applies state to a single light through its vendor integration."),
		mw.WithOperationID("setLightState"))

	// --- Rooms ---
	mw.Get(api, "/api/v1/rooms", h.Room.ListRooms,
		mw.WithTags("Rooms"),
		mw.WithSummary("List all rooms"),
		mw.WithOperationID("listRooms"))

	mw.Post(api, "/api/v1/rooms", h.Room.CreateRoom,
		mw.WithTags("Rooms"),
		mw.WithSummary("Create a room"),
		mw.WithOperationID("createRoom"),
		mw.WithDefaultStatus(201))

	mw.Get(api, "/api/v1/rooms/{id}", h.Room.GetRoom,
		mw.WithTags("Rooms"),
		mw.WithSummary("Get a room"),
		mw.WithOperationID("getRoom"))

	mw.Delete(api, "/api/v1/rooms/{id}", h.Room.DeleteRoom,
		mw.WithTags("Rooms"),
		mw.WithSummary("Delete a room"),
		mw.WithDescription("Deletes the room and its vendor-side group. The room's lights are not deleted."),
		mw.WithOperationID("deleteRoom"),
		mw.WithDefaultStatus(204))

	mw.Get(api, "/api/v1/rooms/{id}/lights", h.Room.ListRoomLights,
		mw.WithTags("Rooms"),
		mw.WithSummary("List room lights"),
		mw.WithOperationID("listRoomLights"))

	mw.Get(api, "/api/v1/rooms/{id}/integrations", h.Room.RoomIntegrations,
		mw.WithTags("Rooms"),
		mw.WithSummary("List room integrations"),
		mw.WithDescription("Returns the distinct vendor integrations represented in the room's lights."),
		mw.WithOperationID("listRoomIntegrations"))

	mw.Post(api, "/api/v1/rooms/{id}/lights", h.Room.AddRoomLights,
		mw.WithTags("Rooms"),
		mw.WithSummary("Add lights to a room"),
		mw.WithDescription("Adds lights to the room's membership. The first light of a group-capable vendor creates that vendor's group."),
		mw.WithOperationID("addRoomLights"))

	mw.Delete(api, "/api/v1/rooms/{id}/lights/{light_id}", h.Room.RemoveRoomLight,
		mw.WithTags("Rooms"),
		mw.WithSummary("Remove a light from a room"),
		mw.WithOperationID("removeRoomLight"),
		mw.WithDefaultStatus(204))

	mw.Put(api, "/api/v1/rooms/{id}/state", h.Room.SetRoomState,
		mw.WithTags("Rooms"),
		mw.WithSummary("Set room state"),
		mw.WithDescription("Applies state to every light in the room, one sub-operation per vendor. The call returns once every vendor has reported."),
		mw.WithOperationID("setRoomState"))

	mw.Post(api, "/api/v1/rooms/{id}/on", h.Room.TurnOnRoom,
		mw.WithTags("Rooms"),
		mw.WithSummary("Turn room on"),
		mw.WithDescription("Turns every light in the room on at full brightness."),
		mw.WithOperationID("turnOnRoom"))

	mw.Post(api, "/api/v1/rooms/{id}/off", h.Room.TurnOffRoom,
		mw.WithTags("Rooms"),
		mw.WithSummary("Turn room off"),
		mw.WithOperationID("turnOffRoom"))

	// --- Logging ---
	mw.Get(api, "/api/v1/logging/level", h.Logging.GetLevel,
		mw.WithTags("Logging"),
		mw.WithSummary("Get global log level"),
		mw.WithOperationID("getLogLevel"))

	mw.Put(api, "/api/v1/logging/level", h.Logging.SetLevel,
		mw.WithTags("Logging"),
		mw.WithSummary("Set global log level"),
		mw.WithDescription("Changes the global log level at runtime. Valid values: debug, info, warn, error."),
		mw.WithOperationID("setLogLevel"))
}
