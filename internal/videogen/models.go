package videogen

// ModelDescriptor describes one entry in the static model catalog.
type ModelDescriptor struct {
	// ID is the model identifier accepted by the broker.
	ID string `json:"id"`
	// DisplayName is the human-readable model name.
	DisplayName string `json:"name"`
	// Speed is a coarse generation-speed label.
	Speed string `json:"speed"`
	// Quality is a coarse output-quality label.
	Quality string `json:"quality"`
}

// modelCatalog is the fixed set of models offered through the plugin.
// The broker owns actual availability; this list only drives help output
// and tool listings.
var modelCatalog = []ModelDescriptor{
	{ID: "minimax-video", DisplayName: "MiniMax Video", Speed: "medium", Quality: "high"},
	{ID: "wan-2.1", DisplayName: "Wan 2.1", Speed: "fast", Quality: "medium"},
	{ID: "kling-1.6", DisplayName: "Kling 1.6", Speed: "medium", Quality: "high"},
	{ID: "luma-ray2", DisplayName: "Luma Ray 2", Speed: "slow", Quality: "highest"},
}

// Models returns a copy of the static model catalog.
func Models() []ModelDescriptor {
	models := make([]ModelDescriptor, len(modelCatalog))
	copy(models, modelCatalog)
	return models
}

// ModelByID looks up a catalog entry by identifier.
func ModelByID(id string) (ModelDescriptor, bool) {
	for _, model := range modelCatalog {
		if model.ID == id {
			return model, true
		}
	}
	return ModelDescriptor{}, false
}
