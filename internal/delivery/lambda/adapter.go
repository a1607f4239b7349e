// Package lambda serves API Gateway proxy events through the gin router.
package lambda

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
)

// Adapter turns proxy events into requests for the wrapped engine
type Adapter struct {
	proxy *ginadapter.GinLambda
}

// NewAdapter creates a new API Gateway adapter
func NewAdapter(engine *gin.Engine) *Adapter {
	return &Adapter{proxy: ginadapter.New(engine)}
}

// Handle serves one proxy event. Errors are only returned for events that
// cannot be turned into a request; handler failures are HTTP responses.
func (a *Adapter) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return a.proxy.ProxyWithContext(ctx, event)
}
