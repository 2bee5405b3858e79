// Package params binds typed path parameters from gin routes.
package params

import (
	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"
)

// PathUint binds the named path parameter as an unsigned integer using the
// OpenAPI "simple" style.
func PathUint(c *gin.Context, name string) (uint, error) {
	var v uint
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &v,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil {
		return 0, err
	}
	return v, nil
}
