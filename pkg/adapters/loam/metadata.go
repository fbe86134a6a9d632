package loam

// SlideMetadata is the frontmatter of a slide document.
// It uses "mapstructure" tags to match the attribute keys authors write.
type SlideMetadata struct {
	ID    string `json:"id" mapstructure:"id"`
	Title string `json:"title" mapstructure:"title"`

	// Order positions the slide in the deck. Slides sharing an order fall back to their ID.
	Order int `json:"order" mapstructure:"order"`

	Transition string `json:"transition" mapstructure:"transition"`
	// Delay is the transition duration in milliseconds.
	Delay int `json:"delay" mapstructure:"delay"`

	OnUnload        string `json:"on_unload" mapstructure:"on_unload"`
	OnTransitionEnd string `json:"on_transition_end" mapstructure:"on_transition_end"`
	Current         bool   `json:"current" mapstructure:"current"`
}
