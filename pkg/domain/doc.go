/*
Package domain contains the core domain models of the SlideKit deck controller.

It defines the slides of a deck, the transition kinds that decide how two slides swap,
the state tags a slide carries during a transition, and the lifecycle events emitted by
the runtime. This package is kept pure and free of external dependencies like I/O or
persistence, following Hexagonal Architecture principles.

# Key Entities

  - Slide: One unit of presented content with its transition configuration and callback names.
  - TransitionKind: A named visual strategy (dissolve, fade, slide) and its synchronization policy.
  - Tag: A state marker (current, next, in, out) carried by a slide's class set.
  - Snapshot: A resumable view of a presentation (current slide and back-history).
*/
package domain
