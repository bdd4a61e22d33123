// embed.go - 资源嵌入声明
// 必须放在项目根目录（与 data/ 同级）
// 因为 //go:embed 指令只能嵌入当前包目录及其子目录的文件
//
// 浴缸贴图不内嵌：它是外部提供的资源，缺失时启动失败。
package main

import "embed"

//go:embed data/duck_bathtub.yaml
var dataFS embed.FS
