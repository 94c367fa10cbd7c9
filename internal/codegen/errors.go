package codegen

import (
	"infinity/internal/ast"
	"infinity/internal/diag"
	"infinity/internal/token"
)

// nodeErrorf builds a Code Generator diagnostic positioned at node
func nodeErrorf(node ast.Node, format string, args ...interface{}) error {
	tok, _ := tokenFromNode(node)
	return diag.At(diag.CodeGenerator, tok, format, args...)
}

func tokenFromNode(node ast.Node) (token.Token, bool) {
	var tok token.Token
	switch n := node.(type) {
	case *ast.FunctionDef:
		tok = n.Token
	case *ast.Block:
		tok = n.Token
	case *ast.VarDecl:
		tok = n.Token
	case *ast.Assign:
		tok = n.Token
	case *ast.Call:
		tok = n.Token
	case *ast.If:
		tok = n.Token
	case *ast.Loop:
		tok = n.Token
	case *ast.While:
		tok = n.Token
	case *ast.Return:
		tok = n.Token
	case *ast.Swap:
		tok = n.Token
	case *ast.Arith:
		if n.X != nil {
			tok = n.X.Source
		}
	default:
		return token.Token{}, false
	}
	return tok, tok.HasPosition()
}
