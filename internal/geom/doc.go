// Package geom holds the 2D geometry used to build and deform scene shapes:
// vectors, boxes, polygon measures, arc-length resampling, half-plane
// splitting and the sample bulge profile.
package geom
