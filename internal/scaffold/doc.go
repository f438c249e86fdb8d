// Package scaffold generates JET components from embedded templates. It powers
// "ojet create component", writing a virtual DOM (TSX) component by default or
// a composite component with a knockout view model.
package scaffold
