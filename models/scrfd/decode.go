package scrfd

import "github.com/nvr-ai/go-facedet/images"

// DecodeBox turns a reference point and four edge distances into a box.
//
// The distances are (left, top, right, bottom), already scaled to pixels.
// No clamping or corner ordering is applied: negative distances yield
// swapped corners and points near the border yield boxes outside the canvas.
//
// Arguments:
//   - point: The reference point (x, y).
//   - distance: The edge distances (d0, d1, d2, d3).
//
// Returns:
//   - images.Rect: (x-d0, y-d1, x+d2, y+d3).
func DecodeBox(point [2]float32, distance [4]float32) images.Rect {
	return images.Rect{
		X1: point[0] - distance[0],
		Y1: point[1] - distance[1],
		X2: point[0] + distance[2],
		Y2: point[1] + distance[3],
	}
}
