// SPDX-License-Identifier: EPL-2.0

package routing

import "errors"

var (
	ErrInvalidEdge  = errors.New("edge is not part of the routing graph")
	ErrCyclicPlan   = errors.New("routing plan contains a backward edge")
	ErrDisconnected = errors.New("routing plan does not reach the destination")
	ErrNoParam      = errors.New("node has no settable parameter")
)
