// Package ui is the contract between the engine and a retained UI runtime.
// The engine never looks inside widget trees; it only builds, updates,
// draws and recaches them through the interfaces declared here.
//
// Lifecycle of one window's interface:
//   - Builder.Build turns the application's view (an Element) into a live
//     UserInterface, seeded from the Cache left by the previous interface so
//     focus, hover and pressed state survive a rebuild.
//   - UserInterface.Update receives the window's semantic events, appends the
//     messages its widgets produce and reports per-event capture status. An
//     Outdated state tells the engine the view must be rebuilt.
//   - UserInterface.Draw renders into the window's Renderer and reports the
//     mouse interaction, which the engine turns into a cursor shape request.
//   - UserInterface.IntoCache tears the live tree down again before the
//     application runs, so a window never holds a live tree and a cache at
//     the same time.
//
// Presentation:
//   - A Presenter owns the surfaces' render targets. The engine creates one
//     target and one renderer per window, reconfigures the target on resize
//     and presents after each redraw.
//
// Operations:
//   - An Operation visits the identified widgets of every live interface
//     (focus changes, bounds queries). Outcome chains operations or ends the
//     walk with a message for the application.
package ui
