// Command tokenfactoryd 运行代币工厂授权服务
package main

func main() {
	Execute()
}
