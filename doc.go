/*
Package slidekit is a slide-deck presentation controller.

It advances an ordered list of slides forward and backward, drives class-based
transitions between the current and the next slide, and invokes author callbacks at
defined lifecycle points. At its core is a transition state machine that coordinates
completion signals against two transition styles: a synchronous class swap, and an
asynchronous two-phase transition (out, then in). It guarantees that lifecycle
callbacks fire exactly once per slide change and that the back history stays
consistent however signals arrive.

# Concept

A slide carries a set of classes. The controller marks the presented slide "current"
and, during an asynchronous transition, the departing slide "out", the arriving slide
"next" then "in". The environment rendering the slides (a browser, the terminal stage,
a remote) reports the end of each animation with a completion signal keyed by slide
ID. Duplicate and late signals are ignored.

# Usage

Load a directory of markdown slides with frontmatter attributes and play it:

	deck, err := slidekit.New(ctx, "./talk",
		slidekit.WithCallback("reveal", func(ctx context.Context, evt domain.CallbackEvent) error {
			log.Printf("arrived on %s", evt.SlideID)
			return nil
		}),
	)
	if err != nil {
		log.Fatal(err)
	}

	p, err := deck.Play(ctx)
	if err != nil {
		log.Fatal(err)
	}
	defer p.Stop()

	_ = p.Next(ctx)

Slides are markdown documents:

	---
	title: Results
	order: 3
	transition: fade
	delay: 800
	on_transition_end: reveal
	---
	# Results

Remote controls (HTTP, MCP) and the terminal presenter drive the same player; see
the cmd/slidekit command.
*/
package slidekit
